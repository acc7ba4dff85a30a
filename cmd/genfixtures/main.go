// Command genfixtures writes a small test corpus into a target directory:
// two vehicle policy PDFs that differ in holder details and a pair of XML
// files that differ in a few lines. Useful for exercising doccompare end to
// end without real production documents.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

type textPrimitive struct {
	Value    string    `json:"value"`
	Position []float64 `json:"position"`
	Font     fontSpec  `json:"font"`
}

type fontSpec struct {
	Name string  `json:"name"`
	Size float64 `json:"size"`
}

type pageContent struct {
	Text []textPrimitive `json:"text"`
}

type page struct {
	Content pageContent `json:"content"`
}

type createSpec struct {
	Paper string          `json:"paper"`
	Pages map[string]page `json:"pages"`
}

var policyTerms = []string{
	"1. The policy covers all vehicles listed under the policyholder's ownership.",
	"2. The premium is due annually based on the evaluation of risks.",
	"3. Comprehensive coverage includes accidental damage, theft, and third-party liability.",
	"4. Any dispute arising from the policy is subject to state laws.",
	"Please read the terms and conditions in your policy document for further details.",
}

// policyPage lays out one vehicle policy as pdfcpu create primitives,
// mirroring a letter-sized page with a title block, the holder details and
// the fixed terms section.
func policyPage(holder, policyNumber, premium string) page {
	body := fontSpec{Name: "Helvetica", Size: 12}
	text := []textPrimitive{
		{Value: "Comprehensive Vehicle Policy", Position: []float64{200, 750}, Font: fontSpec{Name: "Helvetica-Bold", Size: 16}},
		{Value: "Policy Document", Position: []float64{200, 730}, Font: fontSpec{Name: "Helvetica-Oblique", Size: 12}},
		{Value: "Policy Holder Name: " + holder, Position: []float64{72, 700}, Font: body},
		{Value: "Policy Number: " + policyNumber, Position: []float64{72, 680}, Font: body},
		{Value: "Premium Amount: $" + premium, Position: []float64{72, 660}, Font: body},
		{Value: "Policy Terms and Conditions:", Position: []float64{72, 620}, Font: fontSpec{Name: "Helvetica-Bold", Size: 14}},
	}

	y := 600.0
	for _, line := range policyTerms {
		text = append(text, textPrimitive{Value: line, Position: []float64{72, y}, Font: body})
		y -= 15
	}
	y -= 20
	text = append(text, textPrimitive{
		Value:    "Generated with care by the Insurance Management System",
		Position: []float64{72, y},
		Font:     fontSpec{Name: "Helvetica-Oblique", Size: 10},
	})

	return page{Content: pageContent{Text: text}}
}

func writePolicyPDF(outPath, holder, policyNumber, premium string) error {
	spec := createSpec{
		Paper: "Letter",
		Pages: map[string]page{"1": policyPage(holder, policyNumber, premium)},
	}
	payload, err := json.MarshalIndent(spec, "", "  ")
	if err != nil {
		return err
	}

	jsonPath := outPath + ".json"
	if err := os.WriteFile(jsonPath, payload, 0644); err != nil {
		return err
	}
	defer os.Remove(jsonPath)

	return api.CreateFile("", jsonPath, outPath, nil)
}

const xmlFixtureA = `<?xml version="1.0" encoding="UTF-8"?>
<policy>
  <holder>John Doe</holder>
  <number>12345ABC</number>
  <premium currency="USD">500</premium>
  <timestamp>2026-01-15T10:00:00Z</timestamp>
</policy>
`

const xmlFixtureB = `<?xml version="1.0" encoding="UTF-8"?>
<policy>
  <holder>Jane Smith</holder>
  <number>67890XYZ</number>
  <premium currency="USD">550</premium>
  <timestamp>2026-01-16T11:30:00Z</timestamp>
</policy>
`

func run(outDir string) error {
	pdfDir := filepath.Join(outDir, "policies_pdf")
	xmlDir := filepath.Join(outDir, "policies_xml")
	for _, dir := range []string{pdfDir, xmlDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	if err := writePolicyPDF(filepath.Join(pdfDir, "cv_policy1.pdf"), "John Doe", "12345ABC", "500"); err != nil {
		return fmt.Errorf("cv_policy1.pdf: %w", err)
	}
	if err := writePolicyPDF(filepath.Join(pdfDir, "cv_policy2.pdf"), "Jane Smith", "67890XYZ", "550"); err != nil {
		return fmt.Errorf("cv_policy2.pdf: %w", err)
	}

	if err := os.WriteFile(filepath.Join(xmlDir, "policy1.xml"), []byte(xmlFixtureA), 0644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(xmlDir, "policy2.xml"), []byte(xmlFixtureB), 0644); err != nil {
		return err
	}
	return nil
}

func main() {
	outDir := flag.String("out", "testdata/fixtures", "directory to write fixture documents into")
	flag.Parse()

	if err := run(*outDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Fixtures written to %s\n", *outDir)
}
