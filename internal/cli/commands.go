package cli

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"wordstat-go/pkg/wordstat"
)

func (a *app) regionsCommand() *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "regions",
		Short: "List the regions reports can be limited to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			regions, err := client.GetRegions(cmd.Context())
			if err != nil {
				return err
			}
			if lang != "" {
				if err := sortRegions(regions, lang); err != nil {
					return err
				}
			}
			return a.render(cmd.OutOrStdout(), regions, func(w io.Writer) error {
				t := newTable(w, "ID", "PARENT", "NAME")
				for _, r := range regions {
					t.row(r.ID, optionalID(r.ParentID), r.Name)
				}
				return t.flush()
			})
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "", "sort by name using the collation of this language (e.g. ru)")
	return cmd
}

// sortRegions orders regions by name the way speakers of lang expect
func sortRegions(regions []wordstat.Region, lang string) error {
	tag, err := language.Parse(lang)
	if err != nil {
		return fmt.Errorf("invalid language %q: %w", lang, err)
	}
	c := collate.New(tag, collate.IgnoreCase)
	sort.SliceStable(regions, func(i, j int) bool {
		return c.CompareString(regions[i].Name, regions[j].Name) < 0
	})
	return nil
}

func (a *app) reportsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reports",
		Short: "List stored reports and their state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			statuses, err := client.GetReportList(cmd.Context())
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), statuses, func(w io.Writer) error {
				t := newTable(w, "REPORT", "STATE")
				for _, s := range statuses {
					t.row(s.ReportID, s.State)
				}
				return t.flush()
			})
		},
	}
}

func (a *app) createCommand() *cobra.Command {
	var (
		phrases []string
		regions []int64
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Queue a new report",
		Long: `Queue a new report for up to 10 phrases, optionally limited to regions.

  wordstat create --phrase "golang" --phrase "go -game" --region 225`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := wordstat.NewReportRequest().WithPhrases(phrases)
			if err != nil {
				return err
			}
			req = req.WithRegionIDs(regions)

			client, err := a.client()
			if err != nil {
				return err
			}
			id, err := client.CreateReport(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), map[string]int64{"report_id": id}, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, id)
				return err
			})
		},
	}
	cmd.Flags().StringArrayVar(&phrases, "phrase", nil, "keyphrase to report on (repeatable)")
	cmd.Flags().Int64SliceVar(&regions, "region", nil, "region id to limit the report to (repeatable)")
	_ = cmd.MarkFlagRequired("phrase")
	return cmd
}

func (a *app) reportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "report <id>",
		Short: "Fetch a finished report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseReportID(args[0])
			if err != nil {
				return err
			}
			client, err := a.client()
			if err != nil {
				return err
			}
			entries, err := client.GetReport(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), entries, func(w io.Writer) error {
				t := newTable(w, "PHRASE", "REGIONS", "KIND", "KEYWORD", "SHOWS")
				for _, e := range entries {
					regions := joinIDs(e.RegionIDs)
					for _, k := range e.RelatedPhrases {
						t.row(e.Phrase, regions, "related", k.Phrase, k.MonthlyShows)
					}
					for _, k := range e.SimilarPhrases {
						t.row(e.Phrase, regions, "similar", k.Phrase, k.MonthlyShows)
					}
				}
				return t.flush()
			})
		},
	}
}

func (a *app) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseReportID(args[0])
			if err != nil {
				return err
			}
			client, err := a.client()
			if err != nil {
				return err
			}
			if err := client.DeleteReport(cmd.Context(), id); err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), map[string]int64{"deleted": id}, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "deleted %d\n", id)
				return err
			})
		},
	}
}

func parseReportID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid report id %q", arg)
	}
	return id, nil
}

func joinIDs(ids []int64) string {
	if len(ids) == 0 {
		return "all"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
