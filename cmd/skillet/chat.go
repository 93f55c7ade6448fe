package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jingkaihe/skillet/pkg/presenter"
	"github.com/jingkaihe/skillet/pkg/skills"
	"github.com/jingkaihe/skillet/pkg/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start the interactive skill selector",
	Long:  `Start the interactive chat-style interface. Type /skills to open the skill selector grid.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		loader, err := skills.NewLoaderFromConfig()
		if err != nil {
			presenter.Error(err, "failed to configure skill discovery")
			return
		}

		tui.StartChatCmd(ctx, loader)
	},
}
