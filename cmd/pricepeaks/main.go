package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pricepeaks/internal/pricelist"
	"pricepeaks/internal/segment"
)

var cfgFile string

func main() {
	rootCmd := &cobra.Command{
		Use:   "pricepeaks",
		Short: "PricePeaks - Segment day-ahead electricity prices into peak periods",
		Long: `PricePeaks splits a day-ahead electricity price series into ranked
high-price periods, encodes them as day-offset time ranges, and
aggregates interval prices into hourly statistics.`,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pricepeaks/config.yaml)")

	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(segmentCmd())
	rootCmd.AddCommand(hourlyCmd())
	rootCmd.AddCommand(lowestCmd())
	rootCmd.AddCommand(atCmd())
	rootCmd.AddCommand(parseCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".pricepeaks")
		viper.AddConfigPath(configDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetDefault("max_sublists", 3)
	viper.SetDefault("sublist_length", 0)
	viper.SetDefault("duration_hours", 1)

	viper.AutomaticEnv()
	viper.ReadInConfig()
}

// readSeries loads a price document from a file or stdin ("-").
func readSeries(path string) (segment.Series, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return segment.Series{}, err
		}
		defer f.Close()
		r = f
	}
	return pricelist.Decode(r)
}

// readEntries loads annotated entries, accepting either a plain array of
// {start,end,value} records or a {today,tomorrow,tomorrow_valid} document.
func readEntries(path string) ([]segment.Entry, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var probe struct {
		Today []json.RawMessage `json:"today"`
	}
	if err := json.Unmarshal(data, &probe); err == nil && probe.Today != nil {
		today, tomorrow, tomorrowValid, err := pricelist.DecodeDays(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return pricelist.Combine(today, tomorrow, tomorrowValid), nil
	}

	series, err := pricelist.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if series.IsFlat() {
		return nil, fmt.Errorf("expected annotated price entries, got a flat value list")
	}
	return series.Annotated(), nil
}

// flatten extracts the flat value sequence and its base midnight from a
// series. Annotated entries contribute their values in order, with the base
// taken from the first entry's day.
func flatten(s segment.Series, base time.Time) ([]float64, time.Time) {
	if s.IsFlat() {
		return s.Flat(), base
	}
	entries := s.Annotated()
	values := make([]float64, len(entries))
	for i, e := range entries {
		values[i] = e.Value
	}
	if base.IsZero() && len(entries) > 0 {
		first := entries[0].Start
		base = time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, first.Location())
	}
	return values, base
}

// parseDay interprets a --base/--ref flag: empty or "today" means midnight
// today, anything else is a YYYY-MM-DD date.
func parseDay(s string) (time.Time, error) {
	if s == "" || s == "today" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}
	day, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format (use YYYY-MM-DD): %w", err)
	}
	return day, nil
}

func segmentCmd() *cobra.Command {
	var file string
	var maxSublists, length int
	var baseStr string

	cmd := &cobra.Command{
		Use:   "segment",
		Short: "Split a price series into ranked high-price periods",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("max-sublists") {
				maxSublists = viper.GetInt("max_sublists")
			}
			if !cmd.Flags().Changed("length") {
				length = viper.GetInt("sublist_length")
			}

			series, err := readSeries(file)
			if err != nil {
				return err
			}
			base, err := parseDay(baseStr)
			if err != nil {
				return err
			}

			values, base := flatten(series, base)
			sublists, indexLists := segment.Split(values, length, maxSublists)
			ranges := segment.IndicesToTimeRanges(indexLists, base)

			result := struct {
				Sublists   [][]float64 `json:"sublists"`
				Indices    [][]int     `json:"indices"`
				TimeRanges [][]string  `json:"time_ranges"`
			}{sublists, indexLists, ranges}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "Price document (JSON file or '-' for stdin)")
	cmd.Flags().IntVarP(&maxSublists, "max-sublists", "n", 3, "Maximum number of periods to return")
	cmd.Flags().IntVarP(&length, "length", "l", 0, "Cap each period at this many intervals (0 = uncapped)")
	cmd.Flags().StringVarP(&baseStr, "base", "b", "today", "Reference date for index zero (YYYY-MM-DD or 'today')")

	return cmd
}

func hourlyCmd() *cobra.Command {
	var file string
	var baseStr string

	cmd := &cobra.Command{
		Use:   "hourly",
		Short: "Aggregate interval prices into hourly min/max/avg",
		RunE: func(cmd *cobra.Command, args []string) error {
			series, err := readSeries(file)
			if err != nil {
				return err
			}
			base, err := parseDay(baseStr)
			if err != nil {
				return err
			}

			buckets := segment.GroupByHour(series, base)

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(buckets)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "Price document (JSON file or '-' for stdin)")
	cmd.Flags().StringVarP(&baseStr, "base", "b", "today", "Reference date for index zero (YYYY-MM-DD or 'today')")

	return cmd
}

func lowestCmd() *cobra.Command {
	var file string
	var duration int

	cmd := &cobra.Command{
		Use:   "lowest",
		Short: "Find the cheapest run of consecutive price entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("duration") {
				duration = viper.GetInt("duration_hours")
			}

			entries, err := readEntries(file)
			if err != nil {
				return err
			}

			period := segment.LowestPeriod(entries, duration)
			if period == nil {
				return fmt.Errorf("not enough price entries for a %d-hour period", duration)
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(period)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "Price document (JSON file or '-' for stdin)")
	cmd.Flags().IntVarP(&duration, "duration", "d", 1, "Period length in consecutive entries")

	return cmd
}

func atCmd() *cobra.Command {
	var file string
	var atStr string

	cmd := &cobra.Command{
		Use:   "at",
		Short: "Look up the price at a given instant",
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := time.Parse(time.RFC3339, atStr)
			if err != nil {
				return fmt.Errorf("invalid time (use RFC3339): %w", err)
			}

			entries, err := readEntries(file)
			if err != nil {
				return err
			}

			value, ok := segment.PriceAt(entries, at)
			if !ok {
				return fmt.Errorf("no price entry covers %s", at.Format(time.RFC3339))
			}

			fmt.Println(value)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "Price document (JSON file or '-' for stdin)")
	cmd.Flags().StringVarP(&atStr, "time", "t", "", "Instant to look up (RFC3339)")
	cmd.MarkFlagRequired("time")

	return cmd
}

func parseCmd() *cobra.Command {
	var refStr string

	cmd := &cobra.Command{
		Use:   "parse RANGE",
		Short: "Decode a time-range string into timestamps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := parseDay(refStr)
			if err != nil {
				return err
			}

			start, end, err := segment.ParseTimeRange(args[0], ref)
			if err != nil {
				return err
			}

			result := struct {
				Start time.Time `json:"start"`
				End   time.Time `json:"end"`
			}{start, end}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	cmd.Flags().StringVarP(&refStr, "ref", "r", "today", "Reference date for day offset zero (YYYY-MM-DD or 'today')")

	return cmd
}
