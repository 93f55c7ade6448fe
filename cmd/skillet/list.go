package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jingkaihe/skillet/pkg/presenter"
	"github.com/jingkaihe/skillet/pkg/skills"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available skills grouped by source",
	Run: func(cmd *cobra.Command, args []string) {
		loader, err := skills.NewLoaderFromConfig()
		if err != nil {
			presenter.Error(err, "failed to configure skill discovery")
			return
		}

		catalog, err := loader.Load(cmd.Context())
		if err != nil {
			presenter.Error(err, "failed to load skills")
			return
		}

		if catalog.Len() == 0 {
			presenter.Info("No skills found.")
			presenter.Info(fmt.Sprintf("Create your first skill: add a SKILL.md under %s/<skill>/", loader.UserRoot()))
			return
		}

		bySource := map[skills.Source][]*skills.Skill{}
		for _, skill := range catalog.Records() {
			bySource[skill.Source] = append(bySource[skill.Source], skill)
		}

		printGroup := func(title string, group []*skills.Skill) {
			if len(group) == 0 {
				return
			}
			presenter.Section(title)
			for _, skill := range group {
				presenter.Info(fmt.Sprintf("%s: %s", skill.Name, skill.Description))
			}
			presenter.Info("")
		}

		printGroup("User Skills", bySource[skills.SourceUser])
		printGroup("Project Skills", bySource[skills.SourceProject])
	},
}
