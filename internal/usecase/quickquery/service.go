// Package quickquery answers a fixed set of named metadata queries over a
// kit's assets without touching any backend.
//
// Every handler is a pure function of its input: identical asset metadata
// produces byte-identical answers, which keeps these queries usable as fast,
// LLM-independent responses and trivially testable.
package quickquery

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	domasset "github.com/kitvault/kitvault/internal/domain/asset"
)

// topN bounds the "Recent Files" and "Largest Files" responses.
const topN = 5

// Input is the metadata collection a quick query aggregates over.
type Input struct {
	Assets []domasset.Asset
	// KitsAvailable is the number of kits in the owning workspace, reported
	// by "Basic Summary".
	KitsAvailable int
}

// Result carries a quick-query answer and the asset IDs it covers.
type Result struct {
	Answer  string
	Sources []string
}

type handler func(in Input) (Result, error)

// Service dispatches quick queries by exact name match.
type Service struct {
	handlers map[string]handler
}

// New creates the quick-query dispatch table.
func New() *Service {
	return &Service{handlers: map[string]handler{
		"Count Assets":  countAssets,
		"File Types":    fileTypes,
		"Recent Files":  recentFiles,
		"Basic Summary": basicSummary,
		"Largest Files": largestFiles,
		"List PDFs":     listPDFs,
		"List Images":   listImages,
	}}
}

// Supported reports whether the query name maps to a quick query.
func (s *Service) Supported(name string) bool {
	_, ok := s.handlers[name]
	return ok
}

// Run evaluates a quick query. The caller must have checked Supported first;
// an unknown name is a programming error surfaced as one.
func (s *Service) Run(name string, in Input) (Result, error) {
	h, ok := s.handlers[name]
	if !ok {
		return Result{}, fmt.Errorf("unknown quick query %q", name)
	}
	return h(in)
}

func countAssets(in Input) (Result, error) {
	var totalSize int64
	for i := range in.Assets {
		totalSize += in.Assets[i].FileSize()
	}

	answer := fmt.Sprintf(
		"You have %d assets in this workspace with a total size of %s. File types include: %s",
		len(in.Assets), FormatSize(totalSize), joinedMimeTypes(in.Assets),
	)
	return Result{Answer: answer, Sources: allIDs(in.Assets)}, nil
}

func fileTypes(in Input) (Result, error) {
	order, groups := groupByMime(in.Assets)

	var b strings.Builder
	b.WriteString("Asset types in this workspace:\n\n")
	for _, mime := range order {
		files := groups[mime]
		fmt.Fprintf(&b, "%s: %d files\n", mime, len(files))
		for _, name := range files {
			fmt.Fprintf(&b, "  - %s\n", name)
		}
	}
	return Result{Answer: b.String(), Sources: allIDs(in.Assets)}, nil
}

func basicSummary(in Input) (Result, error) {
	var totalSize int64
	for i := range in.Assets {
		totalSize += in.Assets[i].FileSize()
	}

	details := make([]string, len(in.Assets))
	for i := range in.Assets {
		a := &in.Assets[i]
		details[i] = fmt.Sprintf("• %s (%s) - %s", a.Name(), FormatSize(a.FileSize()), mimeOrUnknown(a.MimeType()))
	}

	answer := fmt.Sprintf(
		"Workspace Summary:\n\n"+
			"• Total Assets: %d\n"+
			"• Total Size: %s\n"+
			"• File Types: %s\n"+
			"• Kits Available: %d\n\n"+
			"Asset Details:\n%s",
		len(in.Assets), FormatSize(totalSize), joinedMimeTypes(in.Assets),
		in.KitsAvailable, strings.Join(details, "\n"),
	)
	return Result{Answer: answer, Sources: allIDs(in.Assets)}, nil
}

func recentFiles(in Input) (Result, error) {
	sorted := make([]domasset.Asset, len(in.Assets))
	copy(sorted, in.Assets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt().After(sorted[j].CreatedAt())
	})
	return structured(top(sorted))
}

func largestFiles(in Input) (Result, error) {
	sorted := make([]domasset.Asset, len(in.Assets))
	copy(sorted, in.Assets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].FileSize() > sorted[j].FileSize()
	})
	return structured(top(sorted))
}

func listPDFs(in Input) (Result, error) {
	var matched []domasset.Asset
	for i := range in.Assets {
		if in.Assets[i].MimeType() == "application/pdf" {
			matched = append(matched, in.Assets[i])
		}
	}
	return structured(matched)
}

func listImages(in Input) (Result, error) {
	var matched []domasset.Asset
	for i := range in.Assets {
		if strings.HasPrefix(in.Assets[i].MimeType(), "image/") {
			matched = append(matched, in.Assets[i])
		}
	}
	return structured(matched)
}

// assetView is the JSON shape of structured quick-query responses.
type assetView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MimeType    string `json:"mime_type"`
	FileSize    int64  `json:"file_size"`
	AssetType   string `json:"asset_type"`
	CreatedAt   string `json:"created_at"`
}

// structured serializes the matched assets as a JSON list answer.
func structured(assets []domasset.Asset) (Result, error) {
	views := make([]assetView, len(assets))
	for i := range assets {
		a := &assets[i]
		views[i] = assetView{
			ID:          a.ID(),
			Name:        a.Name(),
			Description: a.Description(),
			MimeType:    a.MimeType(),
			FileSize:    a.FileSize(),
			AssetType:   a.AssetType(),
			CreatedAt:   a.CreatedAt().UTC().Format(time.RFC3339),
		}
	}

	data, err := json.Marshal(views)
	if err != nil {
		return Result{}, fmt.Errorf("marshal quick query response: %w", err)
	}
	return Result{Answer: string(data), Sources: allIDs(assets)}, nil
}

func top(assets []domasset.Asset) []domasset.Asset {
	if len(assets) > topN {
		return assets[:topN]
	}
	return assets
}

func allIDs(assets []domasset.Asset) []string {
	ids := make([]string, len(assets))
	for i := range assets {
		ids[i] = assets[i].ID()
	}
	return ids
}

// joinedMimeTypes lists distinct MIME types in first-seen order, "None" when
// no asset carries one.
func joinedMimeTypes(assets []domasset.Asset) string {
	seen := make(map[string]struct{})
	var types []string
	for i := range assets {
		mime := assets[i].MimeType()
		if mime == "" {
			continue
		}
		if _, ok := seen[mime]; ok {
			continue
		}
		seen[mime] = struct{}{}
		types = append(types, mime)
	}
	if len(types) == 0 {
		return "None"
	}
	return strings.Join(types, ", ")
}

// groupByMime groups asset names by MIME type in first-seen order.
func groupByMime(assets []domasset.Asset) ([]string, map[string][]string) {
	var order []string
	groups := make(map[string][]string)
	for i := range assets {
		mime := mimeOrUnknown(assets[i].MimeType())
		if _, ok := groups[mime]; !ok {
			order = append(order, mime)
		}
		groups[mime] = append(groups[mime], assets[i].Name())
	}
	return order, groups
}

func mimeOrUnknown(mime string) string {
	if mime == "" {
		return "Unknown"
	}
	return mime
}
