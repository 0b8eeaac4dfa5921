package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/edupanel/admissions-api/internal/console"
	"github.com/edupanel/admissions-api/internal/models"
)

// toastPrinter writes notifications to the terminal.
type toastPrinter struct{}

func (toastPrinter) Success(message string) { fmt.Fprintln(os.Stdout, message) }
func (toastPrinter) Error(message string)   { fmt.Fprintln(os.Stderr, message) }

// staleMarker stands in for the data layer that would refetch the
// invalidated query keys in a long-lived client.
type staleMarker struct{}

func (staleMarker) Invalidate(keys ...string) {
	fmt.Fprintf(os.Stdout, "stale: %s\n", strings.Join(keys, ", "))
}

func main() {
	var (
		baseURL  = flag.String("base-url", "http://localhost:8080/api/v1", "admissions API base URL")
		token    = flag.String("token", "", "bearer token")
		list     = flag.Bool("list", false, "list enquiries")
		status   = flag.String("status", "", "filter by status (NEW, CONFIRMED, CONVERTED, CANCELLED)")
		search   = flag.String("search", "", "search by child, parent or phone")
		page     = flag.Int("page", 1, "page number")
		convert  = flag.Bool("convert", false, "convert enquiries to students")
		ids      = flag.String("ids", "", "comma separated enquiry ids to convert")
		year     = flag.String("year", "", "target academic year id")
		class    = flag.String("class", "", "target class id")
		fees     = flag.Bool("fees", false, "generate fee records")
		feeTypes = flag.String("fee-types", "", "comma separated fee type codes")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client := console.NewClient(*baseURL, *token)

	switch {
	case *list:
		runList(ctx, client, *status, *search, *page)
	case *convert:
		runConvert(ctx, client, *ids, *year, *class, *fees, *feeTypes)
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func runList(ctx context.Context, client *console.Client, status, search string, page int) {
	filter := models.EnquiryFilter{
		Status: models.EnquiryStatus(strings.ToUpper(status)),
		Search: search,
		Page:   page,
	}
	enquiries, pagination, err := client.ListEnquiries(ctx, filter)
	if err != nil {
		log.Fatalf("list failed: %v", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCHILD\tPARENT\tGRADE\tSTATUS")
	for _, e := range enquiries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", e.ID, e.ChildName, e.ParentName, e.GradeLevel, e.Status)
	}
	w.Flush()
	if pagination != nil {
		fmt.Printf("page %d of %d enquiries\n", pagination.Page, pagination.TotalCount)
	}
}

func runConvert(ctx context.Context, client *console.Client, rawIDs, year, class string, fees bool, rawFeeTypes string) {
	wanted, err := parseIDs(rawIDs)
	if err != nil {
		log.Fatalf("invalid -ids: %v", err)
	}
	if len(wanted) == 0 {
		log.Fatal("at least one enquiry id is required, e.g. -ids 1,3")
	}

	enquiries, _, err := client.ListEnquiries(ctx, models.EnquiryFilter{
		Status:   models.EnquiryStatusConfirmed,
		PageSize: 100,
	})
	if err != nil {
		log.Fatalf("fetching confirmed enquiries failed: %v", err)
	}

	byID := make(map[int64]models.Enquiry, len(enquiries))
	for _, e := range enquiries {
		byID[e.ID] = e
	}

	selection := console.NewSelection()
	for _, id := range wanted {
		e, ok := byID[id]
		if !ok {
			fmt.Fprintf(os.Stderr, "skipping enquiry %d: not in the confirmed list\n", id)
			continue
		}
		selection.Toggle(e)
	}
	if selection.Count() == 0 {
		log.Fatal("nothing to convert: no selected enquiry is in CONFIRMED status")
	}

	notifier := toastPrinter{}
	reconciler := console.NewReconciler(selection, notifier, staleMarker{})
	dialog := console.NewConvertDialog(client, selection, reconciler, notifier)

	if err := dialog.Open(ctx); err != nil {
		os.Exit(1)
	}

	dialog.Form.AcademicYearID = year
	dialog.Form.ClassID = class
	if fees {
		dialog.Form.EnableFees()
		if rawFeeTypes != "" {
			dialog.Form.FeeTypes = splitCodes(rawFeeTypes)
		}
	}

	if err := dialog.Submit(ctx); err != nil {
		os.Exit(1)
	}
	if dialog.IsOpen() {
		// validation failed, message already printed
		os.Exit(2)
	}
}

func parseIDs(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a valid id", part)
		}
		out = append(out, id)
	}
	return out, nil
}

func splitCodes(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if code := strings.ToUpper(strings.TrimSpace(part)); code != "" {
			out = append(out, code)
		}
	}
	return out
}
