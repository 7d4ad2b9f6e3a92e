// Command seed fills the configured store with a month of sample entries so
// the dashboard and stats have something to show.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"tableflip.dev/innervoice/pkg/app"
	"tableflip.dev/innervoice/pkg/emotion"
	"tableflip.dev/innervoice/pkg/entry"
	"tableflip.dev/innervoice/pkg/store"
)

var samples = []struct {
	text  string
	label emotion.Label
}{
	{"Had a lovely walk in the sun with an old friend.", emotion.Happy},
	{"Missed the train again and the whole day felt heavy.", emotion.Sad},
	{"The meeting ran long and nobody listened.", emotion.Angry},
	{"Big presentation tomorrow, can't stop rehearsing.", emotion.Anxious},
	{"Quiet evening with tea and a book.", emotion.Calm},
	{"Groceries, laundry, early night.", emotion.Neutral},
}

func main() {
	cfg, err := store.LoadConfig()
	if err != nil {
		panic(err)
	}
	p, err := store.Load(cfg)
	if err != nil {
		panic(err)
	}
	svc, err := app.New(cfg, p)
	if err != nil {
		panic(err)
	}

	now := time.Now()
	rng := rand.New(rand.NewSource(now.UnixNano()))
	var entries []*entry.Entry
	for day := 0; day < 30; day++ {
		for n := rng.Intn(3); n >= 0; n-- {
			s := samples[rng.Intn(len(samples))]
			at := now.Add(-time.Duration(day)*24*time.Hour - time.Duration(rng.Intn(12))*time.Hour)
			e := entry.New(s.text, at)
			e.Emotion = &emotion.Result{Label: s.label, Confidence: 0.5 + rng.Float64()/2}
			if rng.Intn(3) == 0 {
				e.Emotion.Feedback = emotion.Bool(rng.Intn(4) != 0)
			}
			entries = append(entries, e)
		}
	}

	count, err := svc.Import(context.Background(), entries)
	if err != nil {
		panic(err)
	}
	fmt.Printf("seeded %d entries into %s\n", count, cfg.BasePath())
}
