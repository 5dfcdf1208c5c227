package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/l1jgo/sanctuary/internal/animal"
	"github.com/l1jgo/sanctuary/internal/care"
	coresys "github.com/l1jgo/sanctuary/internal/core/system"
	"github.com/l1jgo/sanctuary/internal/persist"
	"github.com/l1jgo/sanctuary/internal/registry"
	"github.com/l1jgo/sanctuary/internal/system"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCmd(out io.Writer) *cobra.Command {
	var opts globalOptions

	root := &cobra.Command{
		Use:   "sanctuary",
		Short: "Wildlife sanctuary management simulator",
		Long: `Manage a zoo of animals from the command line.

Every command starts from the configured roster (see --roster and --empty),
runs once against it and exits.

Examples:
  # Show every animal with its food requirement
  sanctuary census

  # Simulate a week of daily routines
  sanctuary day --days 7

  # Save the zoo to the text dump and read it back
  sanctuary save
  sanctuary load --empty`,
		SilenceUsage: true,
	}
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "config file (default $SANCTUARY_CONFIG or config/sanctuary.toml)")
	pf.StringVar(&opts.rosterPath, "roster", "", "roster file overriding [data] roster_file")
	pf.BoolVar(&opts.empty, "empty", false, "start with an empty zoo")
	pf.Int64Var(&opts.seed, "seed", 0, "random seed (0 uses [random] seed, then the clock)")

	// withApp builds the sanctuary for one command and tears it down after.
	withApp := func(fn func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, out)
			if err != nil {
				return err
			}
			defer a.close()
			return fn(cmd, a, args)
		}
	}

	root.AddCommand(
		newCensusCmd(withApp),
		newSoundsCmd(withApp),
		newFeedCmd(withApp),
		newCheckupsCmd(withApp),
		newFindCmd(withApp),
		newSpeciesCmd(withApp),
		newKindsCmd(withApp),
		newCareCmd(withApp),
		newDemoCmd(withApp),
		newSaveCmd(withApp),
		newLoadCmd(withApp),
		newEnclosureCmd(withApp),
		newRationCmd(withApp),
		newDayCmd(withApp),
		newCopyCmd(withApp),
		newDBCmd(withApp),
	)
	return root
}

type appRunner func(fn func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error

func newCensusCmd(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "census",
		Short: "List every animal with its food requirement",
		Args:  cobra.NoArgs,
		RunE: withApp(func(_ *cobra.Command, a *app, _ []string) error {
			printBanner(a.out, a.zoo.Name(), a.zoo.Capacity())
			a.zoo.DisplayAll(a.out)
			return nil
		}),
	}
}

func newSoundsCmd(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "sounds",
		Short: "Make every animal produce its sound",
		Args:  cobra.NoArgs,
		RunE: withApp(func(_ *cobra.Command, a *app, _ []string) error {
			a.zoo.MakeAllSounds(a.out)
			return nil
		}),
	}
}

func newFeedCmd(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "feed",
		Short: "Plan today's rations and feed every animal",
		Args:  cobra.NoArgs,
		RunE: withApp(func(_ *cobra.Command, a *app, _ []string) error {
			care.PlanRations(a.zoo, a.rules).Write(a.out)
			a.zoo.FeedAll(a.out)
			return nil
		}),
	}
}

func newCheckupsCmd(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "checkups",
		Short: "Examine every animal and treat the ones that need it",
		Long: `Examine every animal. Each animal that fails its checkup raises a
health alert, and the veterinarian on duty treats it once the alerts are
dispatched.`,
		Args: cobra.NoArgs,
		RunE: withApp(func(_ *cobra.Command, a *app, _ []string) error {
			vet := a.newVet()
			sick := vet.Round(a.zoo, a.bus)
			n := a.bus.Flush()
			a.log.Debug("alerts dispatched", zap.Int("events", n), zap.Int("sick", len(sick)))
			fmt.Fprintln(a.out)
			vet.Stats(a.out)
			return nil
		}),
	}
}

func newFindCmd(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "find NAME",
		Short: "Show the sheet of the first animal with that name",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(_ *cobra.Command, a *app, args []string) error {
			found, err := a.zoo.Find(args[0])
			if err != nil {
				return err
			}
			found.Describe(a.out)
			fmt.Fprintf(a.out, "Food required: %g kg\n", found.FoodRequirement())
			return nil
		}),
	}
}

func newSpeciesCmd(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "species LABEL",
		Short: `Show the animals of one species label, e.g. "Lion" or "Penguin (Emperor)"`,
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(_ *cobra.Command, a *app, args []string) error {
			a.zoo.DisplayByKind(a.out, args[0])
			fmt.Fprintf(a.out, "Count: %d\n", a.zoo.CountByKind(args[0]))
			return nil
		}),
	}
}

func newKindsCmd(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "Count the animals per species label",
		Args:  cobra.NoArgs,
		RunE: withApp(func(_ *cobra.Command, a *app, _ []string) error {
			seen := map[string]bool{}
			var labels []string
			a.zoo.ForEach(func(an *animal.Animal) {
				if !seen[an.Species()] {
					seen[an.Species()] = true
					labels = append(labels, an.Species())
				}
			})
			sort.Strings(labels)

			printSection(a.out, "Species")
			for _, l := range labels {
				printStat(a.out, l, strconv.Itoa(a.zoo.CountByKind(l)))
			}
			printSection(a.out, "Kinds")
			for _, k := range a.factory.Kinds() {
				printStat(a.out, k.String(), fmt.Sprintf("%s, eats %g%% of weight", k.Group(), animal.FoodRatio(k)*100))
			}
			return nil
		}),
	}
}

func newCareCmd(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "care [NAME]",
		Short: "Run the special care routine of one animal or of all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: withApp(func(_ *cobra.Command, a *app, args []string) error {
			if len(args) == 1 {
				found, err := a.zoo.Find(args[0])
				if err != nil {
					return err
				}
				found.SpecialCare(a.out, a.rng)
				return nil
			}
			fmt.Fprintln(a.out, "\n=== Special Care ===")
			a.zoo.ForEach(func(an *animal.Animal) {
				an.SpecialCare(a.out, a.rng)
				fmt.Fprintln(a.out)
			})
			return nil
		}),
	}
}

func newDemoCmd(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Show every animal's behaviour and abilities",
		Args:  cobra.NoArgs,
		RunE: withApp(func(_ *cobra.Command, a *app, _ []string) error {
			w := a.out
			fmt.Fprintln(w, "\n=== Polymorphism Demonstration ===")
			a.zoo.ForEach(func(an *animal.Animal) {
				fmt.Fprintf(w, "\n--- %s ---\n", an)
				an.MakeSound(w)
				an.Eat(w)
				an.Sleep(w)
				if h, ok := an.AsHunter(); ok {
					h.Hunt(w)
				}
				if f, ok := an.AsFlyer(); ok {
					f.Fly(w)
				}
				if s, ok := an.AsSwimmer(); ok {
					s.Swim(w)
					s.Dive(w)
				}
				if t, ok := an.AsTalker(); ok {
					t.Talk(w, a.rng)
					t.Mimic(w, "Hello, "+a.zoo.Name()+"!")
				}
			})
			return nil
		}),
	}
}

func newSaveCmd(withApp appRunner) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Write the zoo to the text dump",
		Args:  cobra.NoArgs,
		RunE: withApp(func(_ *cobra.Command, a *app, _ []string) error {
			target := dumpPath(a, path)
			if err := a.zoo.Save(target); err != nil {
				return err
			}
			printOK(a.out, fmt.Sprintf("Saved %d animals to %s", a.zoo.Count(), target))
			return nil
		}),
	}
	cmd.Flags().StringVarP(&path, "file", "f", "", "dump file (default [data] dump_file)")
	return cmd
}

func newLoadCmd(withApp appRunner) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Replace the zoo with the contents of the text dump",
		Args:  cobra.NoArgs,
		RunE: withApp(func(_ *cobra.Command, a *app, _ []string) error {
			source := dumpPath(a, path)
			if err := a.zoo.Load(source, a.factory); err != nil {
				return err
			}
			printOK(a.out, fmt.Sprintf("Loaded %d animals from %s", a.zoo.Count(), source))
			a.zoo.DisplayAll(a.out)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&path, "file", "f", "", "dump file (default [data] dump_file)")
	return cmd
}

func dumpPath(a *app, flag string) string {
	if flag != "" {
		return flag
	}
	return a.cfg.Data.DumpFile
}

func newEnclosureCmd(withApp appRunner) *cobra.Command {
	var capacity int
	cmd := &cobra.Command{
		Use:   "enclosure KIND",
		Short: "Move copies of every animal of one kind into a dedicated enclosure",
		Long: `Build a single-kind enclosure and admit a copy of every zoo animal of
that kind. Animals that do not fit are reported and skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: withApp(func(_ *cobra.Command, a *app, args []string) error {
			kind, ok := animal.ParseKind(args[0])
			if !ok {
				return fmt.Errorf("unknown kind %q", args[0])
			}
			pen, err := registry.NewKindEnclosure(kind.String()+" Enclosure", kind, capacity,
				registry.WithLogger(a.log))
			if err != nil {
				return err
			}
			defer pen.Close()

			a.zoo.ForEach(func(an *animal.Animal) {
				if an.Kind() != kind {
					return
				}
				if err := pen.Add(an.Clone()); err != nil {
					fmt.Fprintf(a.out, "%s stays in the zoo: %v\n", an.Name(), err)
				}
			})
			pen.Display(a.out)
			pen.MakeAllSounds(a.out)
			fmt.Fprintf(a.out, "Enclosure food requirement: %g kg\n", pen.TotalFoodRequirement())
			return nil
		}),
	}
	cmd.Flags().IntVar(&capacity, "capacity", 5, "enclosure capacity")
	return cmd
}

func newRationCmd(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "ration [NAME]",
		Short: "Show today's ration of one animal or the whole plan",
		Args:  cobra.MaximumNArgs(1),
		RunE: withApp(func(_ *cobra.Command, a *app, args []string) error {
			if len(args) == 0 {
				care.PlanRations(a.zoo, a.rules).Write(a.out)
				return nil
			}
			found, err := a.zoo.Find(args[0])
			if err != nil {
				return err
			}
			printStat(a.out, found.Name()+" (base)", fmt.Sprintf("%g kg", found.FoodRequirement()))
			printStat(a.out, found.Name()+" (today)", fmt.Sprintf("%g kg", care.DailyRation(found, a.rules)))
			return nil
		}),
	}
}

func newDayCmd(withApp appRunner) *cobra.Command {
	var days int
	var useDB bool
	cmd := &cobra.Command{
		Use:   "day",
		Short: "Run the daily routine",
		Long: `Run the phase-ordered daily routine: morning head count, feeding,
checkups, alert dispatch, end-of-day report and persistence.

The zoo is written to the text dump at the end of every day, and also to
PostgreSQL with --db.`,
		Args: cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			if days < 1 {
				return fmt.Errorf("--days must be at least 1, got %d", days)
			}
			ctx := cmd.Context()

			var saver system.ZooSaver
			if useDB {
				db, err := a.openDB(ctx)
				if err != nil {
					return err
				}
				defer db.Close()
				saver = persist.NewZooRepo(db)
			}

			vet := a.newVet()
			runner := coresys.NewRunner()
			runner.Register(system.NewMorningSystem(a.zoo, a.out))
			runner.Register(system.NewFeedingSystem(a.zoo, a.rules, a.out, a.log))
			runner.Register(system.NewCheckupSystem(a.zoo, vet, a.bus))
			runner.Register(system.NewEventSystem(a.bus, a.log))
			runner.Register(system.NewReportSystem(a.zoo, vet, a.out))
			runner.Register(system.NewPersistenceSystem(a.zoo, a.cfg.Data.DumpFile, saver, a.cfg.Database.Timeout, a.log))

			var errs []error
			for day := 1; day <= days; day++ {
				if ctx.Err() != nil {
					errs = append(errs, ctx.Err())
					break
				}
				start := time.Now()
				if err := runner.RunDay(ctx, day); err != nil {
					errs = append(errs, err)
				}
				a.log.Debug("day complete", zap.Int("day", day), zap.Duration("took", time.Since(start)))
			}
			return errors.Join(errs...)
		}),
	}
	cmd.Flags().IntVarP(&days, "days", "d", 1, "number of days to simulate")
	cmd.Flags().BoolVar(&useDB, "db", false, "also save to PostgreSQL at the end of every day")
	return cmd
}

func newCopyCmd(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "copy",
		Short: "Clone the zoo and show that the copy is independent",
		Args:  cobra.NoArgs,
		RunE: withApp(func(_ *cobra.Command, a *app, _ []string) error {
			c := a.zoo.Clone()
			defer c.Close()

			printSection(a.out, "Copy")
			printStat(a.out, "Original", fmt.Sprintf("%s (%d animals)", a.zoo.Name(), a.zoo.Count()))
			printStat(a.out, "Copy", fmt.Sprintf("%s (%d animals)", c.Name(), c.Count()))

			if c.Count() > 0 {
				first := c.Animals()[0].Name()
				if err := c.Remove(first); err != nil {
					return err
				}
				printOK(a.out, fmt.Sprintf("Removed %s from the copy", first))
				printStat(a.out, "Original", strconv.Itoa(a.zoo.Count()))
				printStat(a.out, "Copy", strconv.Itoa(c.Count()))
			}
			return nil
		}),
	}
}

func newDBCmd(withApp appRunner) *cobra.Command {
	db := &cobra.Command{
		Use:   "db",
		Short: "Store zoos in PostgreSQL",
	}
	db.AddCommand(
		&cobra.Command{
			Use:   "push",
			Short: "Save the zoo to the database, replacing any stored copy",
			Args:  cobra.NoArgs,
			RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
				conn, err := a.openDB(cmd.Context())
				if err != nil {
					return err
				}
				defer conn.Close()
				if err := persist.NewZooRepo(conn).Save(cmd.Context(), a.zoo); err != nil {
					return err
				}
				printOK(a.out, fmt.Sprintf("Stored %s with %d animals", a.zoo.Name(), a.zoo.Count()))
				return nil
			}),
		},
		&cobra.Command{
			Use:   "pull [NAME]",
			Short: "Load a stored zoo (default: the configured one) and list it",
			Args:  cobra.MaximumNArgs(1),
			RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
				name := a.zoo.Name()
				if len(args) == 1 {
					name = args[0]
				}
				conn, err := a.openDB(cmd.Context())
				if err != nil {
					return err
				}
				defer conn.Close()
				z, err := persist.NewZooRepo(conn).Load(cmd.Context(), name,
					registry.WithLogger(a.log), registry.WithBus(a.bus))
				if err != nil {
					return err
				}
				defer z.Close()
				z.DisplayAll(a.out)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "list",
			Short: "List the stored zoos",
			Args:  cobra.NoArgs,
			RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
				conn, err := a.openDB(cmd.Context())
				if err != nil {
					return err
				}
				defer conn.Close()
				zoos, err := persist.NewZooRepo(conn).List(cmd.Context())
				if err != nil {
					return err
				}
				printSection(a.out, "Stored zoos")
				for _, s := range zoos {
					printStat(a.out, s.Name, fmt.Sprintf("%d/%d, saved %s", s.Animals, s.Capacity, s.SavedAt.Format(time.DateTime)))
				}
				return nil
			}),
		},
	)
	return db
}
