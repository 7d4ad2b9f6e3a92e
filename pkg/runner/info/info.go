package info

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/innervoice/pkg/app"
	"tableflip.dev/innervoice/pkg/store"
)

// Info prints the resolved configuration and a census of the store. The
// classifier API key is never printed.
type Info struct {
	Config  store.Config
	Service *app.Service
}

func (n *Info) Do(ctx context.Context) error {
	if override := os.Getenv("INNERVOICE_CONFIG_PATH"); override != "" {
		fmt.Fprintln(color.Output, "INNERVOICE_CONFIG_PATH found on env, using", override)
	} else {
		fmt.Fprintln(color.Output, "INNERVOICE_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}
	cc := n.Config.Classifier()

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("Store", n.Config.BasePath())
	tbl.AddRow("Timezone", n.Config.Location().String())
	tbl.AddRow("Default range", n.Config.DefaultRange())
	tbl.AddRow("Classifier", classifierState(cc))
	tbl.AddRow("Model", cc.Model)
	tbl.AddRow("Endpoint", cc.BaseURL)
	if cc.Proxy != "" {
		tbl.AddRow("Proxy", "configured")
	}
	fmt.Fprintln(color.Output, tbl)

	if n.Service == nil {
		return fmt.Errorf("info: failed to open the store")
	}
	entries, err := n.Service.Entries(ctx)
	if err != nil {
		return err
	}

	buckets := map[string]int{}
	classified := 0
	for _, e := range entries {
		buckets[store.Bucket(e)]++
		if e.Classified() {
			classified++
		}
	}

	fmt.Fprintf(color.Output, "\nEntries: %d (%d classified)\n", len(entries), classified)
	if len(buckets) == 0 {
		fmt.Fprintf(color.Output, "  %s\n", "no entries")
		return nil
	}
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(color.Output, "  %s  %d\n", k, buckets[k])
	}
	return nil
}

func classifierState(cc store.ClassifierConfig) string {
	if cc.Enabled() {
		return "enabled"
	}
	return color.YellowString("disabled (no API key)")
}
