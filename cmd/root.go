package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "relnotes",
	Short: "Generate AI-written release notes from GitHub history",
	Long: `relnotes turns the merged pull requests and commits of one or more GitHub
repositories, over a date window, into categorized Markdown release notes.
Commits already covered by a merged PR are deduplicated, large change sets
are split into chunks, and an LLM backend (OpenAI, Gemini, or a local
Ollama server) writes the final document.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}
