package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/blaisecz/meal-cycle/internal/config"
	"github.com/blaisecz/meal-cycle/internal/domain"
	"github.com/blaisecz/meal-cycle/internal/localstore"
	"github.com/blaisecz/meal-cycle/internal/syncqueue"
	"gopkg.in/yaml.v3"
)

type ProfileShowCmd struct {
	Name string `help:"Built-in profile name." default:"standard" env:"CYCLE_PROFILE"`
	File string `help:"Profile YAML file; takes precedence over --name." type:"path" env:"CYCLE_PROFILE_FILE"`
}

func (c *ProfileShowCmd) Run(ctx *Context) error {
	profile, err := config.LoadProfile(&config.Config{CycleProfile: c.Name, CycleProfileFile: c.File})
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(ctx.Out)
	enc.SetIndent(2)
	if err := enc.Encode(profile); err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	return enc.Close()
}

type ProfileValidateCmd struct {
	File string `arg:"" help:"Profile YAML file." type:"existingfile"`
}

func (c *ProfileValidateCmd) Run(ctx *Context) error {
	profile, err := config.ReadProfileFile(c.File)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "ok: %s\n", profile)
	return nil
}

type QueueListCmd struct {
	DB string `help:"Local queue database." default:"./data/queue.db" env:"QUEUE_DB_PATH" type:"path"`
}

func (c *QueueListCmd) Run(ctx *Context) error {
	store, err := localstore.Open(c.DB)
	if err != nil {
		return err
	}
	defer store.Close()

	ops, err := store.Load(context.Background())
	if err != nil {
		return err
	}
	if len(ops) == 0 {
		fmt.Fprintln(ctx.Out, "queue is empty")
		return nil
	}

	w := tabwriter.NewWriter(ctx.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tKIND\tDOCUMENT\tSTATUS\tENQUEUED")
	for i, op := range ops {
		status := "-"
		if op.Kind != domain.OperationDelete {
			if cycle, err := op.DecodeCycle(); err == nil {
				status = string(cycle.Status)
			}
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", i+1, op.Kind, op.DocumentID, status, op.EnqueuedAt.Format(time.RFC3339))
	}
	return w.Flush()
}

type QueueFlushCmd struct {
	DB          string        `help:"Local queue database." default:"./data/queue.db" env:"QUEUE_DB_PATH" type:"path"`
	DatabaseURL string        `help:"Remote store connection string." required:"" env:"DATABASE_URL"`
	Timeout     time.Duration `help:"Flush timeout." default:"30s"`
}

func (c *QueueFlushCmd) Run(ctx *Context) error {
	store, err := localstore.Open(c.DB)
	if err != nil {
		return err
	}
	defer store.Close()

	remote, err := ctx.OpenRemote(c.DatabaseURL)
	if err != nil {
		return err
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	queue := syncqueue.New(store, remote, syncqueue.WithOnline(true))
	if err := queue.Load(flushCtx); err != nil {
		return err
	}

	pending := len(queue.Pending())
	if pending == 0 {
		fmt.Fprintln(ctx.Out, "queue is empty")
		return nil
	}
	if err := queue.Flush(flushCtx); err != nil {
		return fmt.Errorf("flush %d operations: %w", pending, err)
	}
	if left := len(queue.Pending()); left > 0 {
		return errors.New("queue was not drained")
	}

	fmt.Fprintf(ctx.Out, "flushed %d operations\n", pending)
	return nil
}
