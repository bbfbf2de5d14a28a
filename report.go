package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/ccfrost/climbsync/internal/config"
	"github.com/ccfrost/climbsync/internal/lib"
	"github.com/ccfrost/climbsync/internal/settings"
)

type grantChecker interface {
	Connected(account string) bool
}

// printStatus writes the sync configuration and the number of videos waiting to be uploaded.
func printStatus(ctx context.Context, w io.Writer, cfg config.ClimbsyncConfig, store *settings.Store, grants grantChecker) error {
	folder, err := store.Folder(ctx)
	if err != nil {
		return err
	}
	account, err := store.Account(ctx)
	if err != nil {
		return err
	}
	ledger, err := lib.LoadLedger(ctx, store)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Destination:\t%s\n", cfg.Destination)
	if folder == "" {
		fmt.Fprintf(tw, "Folder:\t(not set)\n")
	} else {
		fmt.Fprintf(tw, "Folder:\t%s\n", folder)
	}
	switch {
	case account == "":
		fmt.Fprintf(tw, "Account:\t(not connected)\n")
	case !grants.Connected(account):
		fmt.Fprintf(tw, "Account:\t%s (token missing, reconnect)\n", account)
	default:
		fmt.Fprintf(tw, "Account:\t%s\n", account)
	}
	fmt.Fprintf(tw, "Uploaded:\t%d\n", ledger.Len())
	if folder != "" {
		entries, err := lib.LocalDirectory{}.List(ctx, folder)
		if err != nil {
			fmt.Fprintf(tw, "Waiting:\t(folder unavailable: %v)\n", err)
		} else {
			fmt.Fprintf(tw, "Waiting:\t%d\n", len(lib.SelectVideos(entries, ledger)))
		}
	}
	return tw.Flush()
}

// printHistory writes the most recent uploads, newest first. A limit of 0 prints all.
func printHistory(ctx context.Context, w io.Writer, store *settings.Store, limit int) error {
	uploads, err := store.UploadHistory(ctx)
	if err != nil {
		return err
	}
	if len(uploads) == 0 {
		fmt.Fprintln(w, "No uploads yet")
		return nil
	}
	if limit > 0 && len(uploads) > limit {
		uploads = uploads[:limit]
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "UPLOADED\tREMOTE ID\tSOURCE")
	for _, u := range uploads {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", u.UploadedAt.Local().Format(time.DateTime), u.RemoteID, u.Identifier)
	}
	return tw.Flush()
}
