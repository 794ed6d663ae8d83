package main

import (
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func checkpointsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkpoints",
		Short: "Inspect the checkpoint store",
	}
	cmd.AddCommand(checkpointsListCmd())
	cmd.AddCommand(checkpointsShowCmd())
	return cmd
}

func checkpointsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored checkpoints ordered by tick",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			metas, err := store.List()
			if err != nil {
				return err
			}
			if len(metas) == 0 {
				cmd.Println("No checkpoints.")
				return nil
			}
			for _, m := range metas {
				cmd.Printf("%s  tick %-6d  %-16s  %s\n",
					m.ID, m.Tick, humanize.Time(m.CreatedAt), m.Description)
			}
			return nil
		},
	}
}

func checkpointsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one checkpoint's snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			cp, err := store.Load(args[0])
			if err != nil {
				return err
			}

			m := cp.Metadata
			cmd.Printf("Checkpoint %s\n", m.ID)
			cmd.Printf("  Created:     %s (%s)\n", m.CreatedAt.Format("2006-01-02 15:04:05"), humanize.Time(m.CreatedAt))
			cmd.Printf("  Tick:        %d\n", m.Tick)
			cmd.Printf("  Description: %s\n", m.Description)
			cmd.Printf("  Run:         %s\n\n", cp.Config.Name)

			st := cp.State
			cmd.Printf("  Entities (%d alive):\n", st.ActiveCount())
			for _, e := range st.Entities() {
				status := "alive"
				if !e.Active {
					status = "dead"
				}
				cmd.Printf("    %-12s %-8s %-6s wealth %.4f  org %.2f  consc %.2f\n",
					e.ID, e.Kind, status, e.Wealth, e.Organization, e.Consciousness)
			}
			cmd.Printf("  Relationships:\n")
			for _, r := range st.Relationships() {
				cmd.Printf("    %s -> %s  %-12s flow %.4f  tension %.4f\n",
					r.SourceID, r.TargetID, r.Kind, r.ValueFlow, r.Tension)
			}
			eco := st.Economy()
			cmd.Printf("  Economy: rent %.4f  repression %.4f  ecological debt %.4f\n",
				eco.AccumulatedRent, eco.RepressionLevel, eco.EcologicalDebt)
			return nil
		},
	}
}
