// Command boardctl drives the pipeline board against a running API: it loads
// a job's board, optionally drags one application to a new stage and prints
// the resulting columns.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/justsurfingit/talentflow/internal/board"
	"github.com/justsurfingit/talentflow/internal/client"
	"github.com/justsurfingit/talentflow/internal/pipeline"
)

func main() {
	apiURL := flag.String("api", "http://localhost:8080", "pipeline API base URL")
	jobID := flag.String("job", "", "job id whose board to load")
	appID := flag.String("app", "", "application to move")
	stage := flag.String("stage", "", "target stage for -app")
	timeout := flag.Duration("timeout", 15*time.Second, "overall request timeout")
	flag.Parse()

	if *jobID == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	api := client.New(*apiURL, nil)
	b := board.New(*jobID, api, board.WithNotifier(board.NotifierFunc(func(n board.Notification) {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", n.Severity, n.Message)
	})))

	cards, err := api.LoadBoard(ctx, *jobID)
	if err != nil {
		log.Fatalf("load board: %v", err)
	}
	if err := b.Load(cards); err != nil {
		log.Fatalf("load board: %v", err)
	}

	rejected := false
	if *appID != "" {
		target, err := pipeline.ParseStage(*stage)
		if err != nil {
			log.Fatalf("stage: %v", err)
		}
		if err := b.BeginDrag(*appID); err != nil {
			log.Fatalf("drag: %v", err)
		}
		b.DragOver(target)
		rejected = b.Drop(ctx, target) == board.DropRejected
	}

	printView(b.View())
	if rejected {
		cancel()
		os.Exit(1)
	}
}

func printView(view board.View) {
	for _, col := range view.Columns {
		fmt.Printf("%s (%d)\n", col.Label, len(col.Cards))
		for _, card := range col.Cards {
			name := card.CandidateName
			if name == "" {
				name = card.CandidateID
			}
			fmt.Printf("  %s  %s  applied %s\n", card.ApplicationID, name, card.AppliedAt.Format("2006-01-02"))
		}
	}
}
