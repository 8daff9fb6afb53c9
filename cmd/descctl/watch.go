package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/descriptor-studio/internal/adapters/driven/events"
)

var watchNATSURL string

var watchCmd = &cobra.Command{
	Use:     "watch",
	Short:   "Stream source created and deleted events",
	GroupID: "sources",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		url := watchNATSURL
		if url == "" {
			url = profile.NATSURL
		}
		if url == "" {
			return errors.New("--nats-url is required (or set nats_url in the profile)")
		}

		sub, err := events.NewNATSSubscriber(url)
		if err != nil {
			return err
		}
		defer sub.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		msgs, err := sub.Subscribe(ctx, "sources.>")
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "watching %s for source events\n", url)
		for msg := range msgs {
			if jsonOutput {
				fmt.Printf("{\"subject\":%q,\"data\":%s}\n", msg.Subject, msg.Data)
				continue
			}
			fmt.Printf("%s %s\n", msg.Subject, msg.Data)
		}
		return nil
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchNATSURL, "nats-url", os.Getenv("NATS_URL"), "NATS server URL")
}
