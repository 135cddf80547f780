package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yigit/checkmygrade/internal/app/models"
	"github.com/yigit/checkmygrade/internal/bootstrap"
	"github.com/yigit/checkmygrade/internal/config"
	"github.com/yigit/checkmygrade/internal/pkg/table"
)

type cli struct {
	configPath string
	asJSON     bool
	deps       *bootstrap.Dependencies
}

func newRootCommand() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "gradebookctl",
		Short:         "Operate on the CheckMyGrade tables",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config",
		config.GetEnv("CONFIG_PATH", filepath.Join("configs", "config.yaml")), "path to the YAML config file")
	root.PersistentFlags().BoolVar(&c.asJSON, "json", false, "print results as JSON")

	root.AddCommand(
		c.statsCommand(),
		c.marksCommand(),
		c.gradesCommand(),
		c.exportCommand(),
		c.importCommand(),
		c.addUserCommand(),
	)
	return root
}

func (c *cli) setup() error {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(c.configPath, os.Stderr)
	if err != nil {
		return err
	}
	if err := bootstrap.SetupStorage(cfg, lgr); err != nil {
		return err
	}
	deps, err := bootstrap.BuildDependencies(cfg, lgr)
	if err != nil {
		return err
	}
	c.deps = deps
	return nil
}

func (c *cli) printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *cli) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print marks, mean and median of every course",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats := c.deps.StatisticsService.CourseStats(cmd.Context())
			if c.asJSON {
				return c.printJSON(cmd.OutOrStdout(), stats)
			}
			return writeCourseStats(cmd.OutOrStdout(), stats)
		},
	}
}

func writeCourseStats(out io.Writer, stats []models.CourseStat) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "COURSE\tSTUDENTS\tMEAN\tMEDIAN")
	for _, s := range stats {
		fmt.Fprintf(w, "%s\t%d\t%.2f\t%.2f\n", s.CourseID, len(s.Marks), s.Mean, s.Median)
	}
	return w.Flush()
}

func (c *cli) marksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "marks <email>",
		Short: "Print a student's marks next to each course's mean and median",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := c.deps.StatisticsService.MarksReport(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if c.asJSON {
				return c.printJSON(cmd.OutOrStdout(), report)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "COURSE\tMARKS\tMEAN\tMEDIAN")
			for _, m := range report.Courses {
				fmt.Fprintf(w, "%s\t%d\t%.2f\t%.2f\n", m.CourseID, m.Marks, m.Mean, m.Median)
			}
			fmt.Fprintf(w, "overall\t%.2f\t\t\n", report.OverallMean)
			return w.Flush()
		},
	}
}

func (c *cli) gradesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "grades <email>",
		Short: "Print a student's grades relative to each course mean",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := c.deps.StatisticsService.GradeReport(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if c.asJSON {
				return c.printJSON(cmd.OutOrStdout(), report)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "COURSE\tMARKS\tGRADE")
			for _, g := range report.Courses {
				fmt.Fprintf(w, "%s\t%d\t%s\n", g.CourseID, g.Marks, g.Grade)
			}
			fmt.Fprintf(w, "overall\t\t%s\n", report.OverallGrade)
			return w.Flush()
		},
	}
}

func (c *cli) exportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.xlsx>",
		Short: "Write the student ledger and course statistics to a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			err := table.WriteFileAtomic(path, func(w io.Writer) error {
				return c.deps.ReportService.Export(cmd.Context(), w)
			})
			if err != nil {
				return fmt.Errorf("failed to export to %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
}

func (c *cli) importCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.xlsx>",
		Short: "Add students from a workbook laid out like the student table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()

			result, err := c.deps.StudentService.ImportFromSpreadsheet(cmd.Context(), file)
			if err != nil {
				return err
			}
			if c.asJSON {
				return c.printJSON(cmd.OutOrStdout(), result)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d, skipped %d\n", result.Imported, result.Skipped)
			for _, msg := range result.Errors {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", msg)
			}
			return nil
		},
	}
}

func (c *cli) addUserCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add-user <id> <password> <role>",
		Short: "Add a login account (role is student or professor)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			role := models.RoleType(args[2])
			if err := c.deps.AuthService.AddUser(cmd.Context(), args[0], args[1], role); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s user %s\n", role, args[0])
			return nil
		},
	}
}
