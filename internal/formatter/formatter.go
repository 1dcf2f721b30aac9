// package formatter provides functions to export the bookmark collection to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"movitv/internal/models"
	"movitv/internal/services"
)

// ExportToCSV converts the bookmark collection to CSV format with columns: Bookmark ID, Title, Type, Year, Rating, TMDB ID
func ExportToCSV(bookmarks []models.EnrichedBookmark) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Bookmark ID", "Title", "Type", "Year", "Rating", "TMDB ID"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, b := range bookmarks {
		record := []string{
			b.BookmarkID,
			b.DisplayTitle(),
			b.MediaType.Label(),
			yearOf(b),
			ratingOf(b),
			b.SubjectID,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts the bookmark collection to Markdown format with poster links
func ExportToMarkdown(bookmarks []models.EnrichedBookmark, title string) ([]byte, error) {
	var buf bytes.Buffer

	if title == "" {
		title = "Bookmarks"
	}
	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Items**: %d\n\n", len(bookmarks)))

	for i, b := range bookmarks {
		line := fmt.Sprintf("%d. %s", i+1, displayOrPlaceholder(b))
		if year := yearOf(b); year != "" {
			line += fmt.Sprintf(" (%s)", year)
		}
		line += fmt.Sprintf(" [%s]", b.MediaType.Label())
		buf.WriteString(line + "\n")

		if b.Metadata != nil && b.Metadata.PosterPath != "" {
			buf.WriteString(fmt.Sprintf("   ![Poster](%s)\n", services.ImageURL(b.Metadata.PosterPath)))
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts the bookmark collection to plain text format
func ExportToText(bookmarks []models.EnrichedBookmark) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Bookmarks: %d\n\n", len(bookmarks)))

	for i, b := range bookmarks {
		buf.WriteString(fmt.Sprintf("%d. %s [%s]\n", i+1, displayOrPlaceholder(b), b.MediaType.Label()))
	}

	return buf.Bytes(), nil
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// WriteCSVExport writes the collection to {base}.csv, defaulting the base to "bookmarks".
func WriteCSVExport(bookmarks []models.EnrichedBookmark, baseFilepath string) (string, error) {
	if baseFilepath == "" {
		baseFilepath = "bookmarks"
	}

	csvData, err := ExportToCSV(bookmarks)
	if err != nil {
		return "", fmt.Errorf("failed to generate CSV: %w", err)
	}

	file := baseFilepath + ".csv"
	if err := os.WriteFile(file, csvData, 0644); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}

	return file, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory string
	Files     []string
	Posters   []string
}

// WriteMarkdownExport exports the collection to Markdown in a dedicated directory.
//
// Creates {dir}/README.md and, when withPosters is set, downloads each
// bookmark's poster into {dir}/posters/. A failed download is reported as a
// warning and skipped.
func WriteMarkdownExport(bookmarks []models.EnrichedBookmark, outputDir, title string, withPosters bool) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = "bookmarks"
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{
		Directory: outputDir,
		Files:     []string{},
	}

	if withPosters {
		postersDir := fmt.Sprintf("%s/posters", outputDir)
		if err := os.MkdirAll(postersDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create posters directory: %w", err)
		}

		for _, b := range bookmarks {
			if b.Metadata == nil || b.Metadata.PosterPath == "" {
				continue
			}
			imageData, err := DownloadImage(services.ImageURL(b.Metadata.PosterPath))
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to download poster for %s: %v\n", displayOrPlaceholder(b), err)
				continue
			}
			posterPath := fmt.Sprintf("%s/%s.jpg", postersDir, b.SubjectID)
			if err := os.WriteFile(posterPath, imageData, 0644); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save poster: %v\n", err)
				continue
			}
			result.Posters = append(result.Posters, posterPath)
			result.Files = append(result.Files, posterPath)
		}
	}

	mdData, err := ExportToMarkdown(bookmarks, title)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := fmt.Sprintf("%s/README.md", outputDir)
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	result.Files = append(result.Files, mdFile)

	return result, nil
}

// WriteTextExport exports the collection to plain text, defaulting to bookmarks.txt.
func WriteTextExport(bookmarks []models.EnrichedBookmark, filepath string) (string, error) {
	if filepath == "" {
		filepath = "bookmarks.txt"
	}

	textData, err := ExportToText(bookmarks)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}

// displayOrPlaceholder falls back to the subject id when enrichment failed
// for the item.
func displayOrPlaceholder(b models.EnrichedBookmark) string {
	if title := b.DisplayTitle(); title != "" {
		return title
	}
	return fmt.Sprintf("(unresolved %s)", b.SubjectID)
}

func yearOf(b models.EnrichedBookmark) string {
	if b.Metadata == nil {
		return ""
	}
	return b.Metadata.Year()
}

func ratingOf(b models.EnrichedBookmark) string {
	if b.Metadata == nil || b.Metadata.VoteAverage == 0 {
		return ""
	}
	return strconv.FormatFloat(b.Metadata.VoteAverage, 'f', 1, 64)
}
