package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nekogravitycat/venue-booking-backend/internal/availability"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "venuectl",
		Short:         "Offline slot, availability and price checks for a venue snapshot",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newSlotsCmd())
	root.AddCommand(newAvailabilityCmd())
	root.AddCommand(newQuoteCmd())

	return root
}

func newSlotsCmd() *cobra.Command {
	var resourcePath string

	c := &cobra.Command{
		Use:   "slots",
		Short: "List the bookable slots of a venue's business day",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := loadResource(resourcePath)
			if err != nil {
				return err
			}

			slots := availability.GenerateSlots(*r)
			out := make([]windowJSON, 0, len(slots))
			for _, s := range slots {
				out = append(out, newWindowJSON(s))
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	c.Flags().StringVar(&resourcePath, "resource", "", "path to the venue JSON")
	_ = c.MarkFlagRequired("resource")
	return c
}

func newAvailabilityCmd() *cobra.Command {
	var (
		resourcePath     string
		reservationsPath string
		date             string
		start            string
		end              string
	)

	c := &cobra.Command{
		Use:   "availability",
		Short: "Show slot occupancy and free windows for one date",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := loadResource(resourcePath)
			if err != nil {
				return err
			}
			var reservations []availability.Reservation
			if reservationsPath != "" {
				if err := readJSONFile(reservationsPath, &reservations); err != nil {
					return err
				}
			}

			d, err := availability.ParseDate(date)
			if err != nil {
				return fmt.Errorf("invalid --date (want YYYY-MM-DD): %w", err)
			}
			window, err := parseWindow(start, end)
			if err != nil {
				return err
			}

			result, err := availability.CheckAvailability(r, reservations, availability.AvailabilityRequest{
				ResourceID:        r.ID,
				Date:              d,
				RequestedInterval: window,
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}

	c.Flags().StringVar(&resourcePath, "resource", "", "path to the venue JSON")
	c.Flags().StringVar(&reservationsPath, "reservations", "", "path to a JSON array of reservations")
	c.Flags().StringVar(&date, "date", "", "date to check (YYYY-MM-DD)")
	c.Flags().StringVar(&start, "start", "", "requested window start (HH:MM)")
	c.Flags().StringVar(&end, "end", "", "requested window end (HH:MM)")
	_ = c.MarkFlagRequired("resource")
	_ = c.MarkFlagRequired("date")
	return c
}

func newQuoteCmd() *cobra.Command {
	var (
		resourcePath string
		date         string
		guests       int
		packageID    string
		addOns       []string
		start        string
		end          string
	)

	c := &cobra.Command{
		Use:   "quote",
		Short: "Price a prospective booking",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := loadResource(resourcePath)
			if err != nil {
				return err
			}
			d, err := availability.ParseDate(date)
			if err != nil {
				return fmt.Errorf("invalid --date (want YYYY-MM-DD): %w", err)
			}
			window, err := parseWindow(start, end)
			if err != nil {
				return err
			}

			quote, err := availability.QuotePrice(r, availability.PriceQuoteRequest{
				ResourceID:      r.ID,
				Date:            d,
				GuestCount:      guests,
				PackageID:       packageID,
				AddOnServiceIDs: addOns,
				Interval:        window,
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), quote)
		},
	}

	c.Flags().StringVar(&resourcePath, "resource", "", "path to the venue JSON")
	c.Flags().StringVar(&date, "date", "", "event date (YYYY-MM-DD)")
	c.Flags().IntVar(&guests, "guests", 0, "guest count")
	c.Flags().StringVar(&packageID, "package", "", "package id")
	c.Flags().StringArrayVar(&addOns, "addon", nil, "add-on service id (repeatable)")
	c.Flags().StringVar(&start, "start", "", "booking start (HH:MM), needed for per-hour add-ons")
	c.Flags().StringVar(&end, "end", "", "booking end (HH:MM)")
	_ = c.MarkFlagRequired("resource")
	_ = c.MarkFlagRequired("date")
	return c
}

type windowJSON struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func newWindowJSON(i availability.TimeInterval) windowJSON {
	return windowJSON{Start: availability.FormatClock(i.Start), End: availability.FormatClock(i.End)}
}

// parseWindow returns nil when neither bound is given.
func parseWindow(start, end string) (*availability.TimeInterval, error) {
	if start == "" && end == "" {
		return nil, nil
	}
	if start == "" || end == "" {
		return nil, fmt.Errorf("--start and --end must be given together")
	}
	s, err := availability.ParseClock(start)
	if err != nil {
		return nil, fmt.Errorf("invalid --start: %w", err)
	}
	e, err := availability.ParseClock(end)
	if err != nil {
		return nil, fmt.Errorf("invalid --end: %w", err)
	}
	window, err := availability.NewTimeInterval(s, e)
	if err != nil {
		return nil, err
	}
	return &window, nil
}

func loadResource(path string) (*availability.Resource, error) {
	var r availability.Resource
	if err := readJSONFile(path, &r); err != nil {
		return nil, err
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

func readJSONFile(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
