package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"jarvis/internal/ipc"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		socket  string
		timeout time.Duration
	)

	root := &cobra.Command{
		Use:           "jarvis-ctl",
		Short:         "Control a running jarvis",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVarP(&socket, "socket", "s", ipc.DefaultSocket, "Control socket path")
	root.PersistentFlags().DurationVarP(&timeout, "timeout", "t", 90*time.Second, "How long to wait for jarvis")

	send := func(cmd *cobra.Command, msg ipc.ControlMessage) (ipc.Reply, error) {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		reply, err := ipc.Send(ctx, socket, msg)
		if err != nil {
			return reply, fmt.Errorf("jarvis: %w", err)
		}
		return reply, nil
	}

	root.AddCommand(&cobra.Command{
		Use:   "say <text>",
		Short: "Queue a phrase as if it was spoken",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := send(cmd, ipc.ControlMessage{Cmd: ipc.CmdSay, Text: strings.Join(args, " ")})
			return err
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "hear <audio-file>",
		Short: "Transcribe an audio file and queue the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			reply, err := send(cmd, ipc.ControlMessage{Cmd: ipc.CmdHear, Path: path})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "heard: %s\n", reply.Text)
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show what jarvis is doing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reply, err := send(cmd, ipc.ControlMessage{Cmd: ipc.CmdStatus})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "state:  %s\n", reply.State)
			if reply.Heard != "" {
				fmt.Fprintf(out, "heard:  %s\n", reply.Heard)
			}
			if reply.Answer != "" {
				fmt.Fprintf(out, "answer: %s\n", reply.Answer)
			}
			return nil
		},
	})

	return root
}
