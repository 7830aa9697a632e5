package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stacktower/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all game modes",
	Long:  `Shows the registered game modes with the IDs used by the score tables.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	rows := make([][]string, 0, len(games))
	for _, g := range games {
		rows = append(rows, []string{g.ID, g.Title})
	}
	printTable([]string{"ID", "Title"}, rows)
	fmt.Println()
	fmt.Println("Run 'stacktower play [campaign|endless]' to play.")
}
