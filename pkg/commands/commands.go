package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/innervoice/pkg/app"
	"tableflip.dev/innervoice/pkg/commands/options"
	"tableflip.dev/innervoice/pkg/store"
)

var (
	output = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "innervoice",
		Short: base.Wrap80("Journal entries with emotion analytics on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAdd(topLevel)
	addList(topLevel)
	addFeedback(topLevel)
	addReclassify(topLevel)
	addDelete(topLevel)
	addStats(topLevel)
	addExport(topLevel)
	addImport(topLevel)
	addWatch(topLevel)
	addDashboard(topLevel)
	addServe(topLevel)
	addMCP(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// loadService resolves the config, opens the store and wires the classifier.
func loadService() (store.Config, *app.Service, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, nil, err
	}
	svc, err := app.New(cfg, p)
	if err != nil {
		return nil, nil, err
	}
	return cfg, svc, nil
}
