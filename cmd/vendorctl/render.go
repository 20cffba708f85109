package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"procurement/client/workflow"
	"procurement/models"
)

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func renderVendors(out io.Writer, snap workflow.ListSnapshot) {
	if snap.Err != "" {
		fmt.Fprintf(out, "Error! %s\n", snap.Err)
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tVENDOR CODE\tNAME\tCONTACT PERSON\tMOBILE\tCITY\tSTATE")
	for _, v := range snap.Vendors {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			v.ID, v.VendorCode, v.Name, dash(v.ContactPerson), dash(v.MobileNumber), v.City(), v.State())
	}
	_ = tw.Flush()
	if len(snap.Vendors) == 0 {
		fmt.Fprintln(out, "No vendors found")
	}
	fmt.Fprintf(out, "Page %d of %d\n", snap.Query.Page, snap.TotalPages)
}

func rate(r *float64) string {
	if r == nil {
		return "-"
	}
	return strconv.FormatFloat(*r, 'f', -1, 64) + "%"
}

func renderItems(out io.Writer, page *models.ItemPage) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ITEM CODE\tITEM NAME\tSAC/HSN\tTYPE\tIGST\tCGST\tSGST\tUTGST")
	for _, it := range page.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			it.ItemCode, it.ItemName, dash(it.SAC_HSN_Code), dash(it.ItemType),
			rate(it.IGST_Rate), rate(it.CGST_Rate), rate(it.SGST_Rate), rate(it.UTGST_Rate))
	}
	_ = tw.Flush()
	fmt.Fprintf(out, "Page %d of %d\n", page.Page, page.TotalPages)
}

// printNotifier writes notifications as single lines to stderr.
type printNotifier struct {
	out io.Writer
}

func (n printNotifier) Notify(level workflow.Level, message string) {
	switch level {
	case workflow.LevelSuccess:
		fmt.Fprintf(n.out, "✔ %s\n", message)
	default:
		fmt.Fprintf(n.out, "✖ %s\n", message)
	}
}
