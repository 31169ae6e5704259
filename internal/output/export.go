package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/chrisdamba/chefmenu/internal/models"
	"github.com/schollz/progressbar/v3"
)

// CatalogReader is the read side of the catalog store.
type CatalogReader interface {
	Items() []models.MenuItem
	Averages() map[models.Course]string
	Counts() map[models.Course]int
}

// ExportCatalog writes every item to the menu_items topic followed by one
// record per course to category_averages, and returns the number of
// messages written. Progress is drawn on progress when it is not nil.
func ExportCatalog(dest OutputDestination, catalog CatalogReader, progress io.Writer) (int, error) {
	items := catalog.Items()
	averages := catalog.Averages()
	counts := catalog.Counts()

	var bar *progressbar.ProgressBar
	if progress != nil {
		bar = progressbar.NewOptions(len(items)+len(models.Courses),
			progressbar.OptionSetWriter(progress),
			progressbar.OptionSetDescription("exporting menu"),
			progressbar.OptionShowCount(),
			progressbar.OptionOnCompletion(func() { fmt.Fprintln(progress) }),
		)
	}

	written := 0
	write := func(topic string, record interface{}) error {
		msg, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to encode %s record: %w", topic, err)
		}
		if err := dest.WriteMessage(topic, msg); err != nil {
			return fmt.Errorf("failed to write %s record: %w", topic, err)
		}
		written++
		if bar != nil {
			_ = bar.Add(1)
		}
		return nil
	}

	for _, item := range items {
		if err := write(models.TopicMenuItems, NewMenuItemRecord(item)); err != nil {
			return written, err
		}
	}
	for _, course := range models.Courses {
		record := CategoryAverageRecord{
			Category:     string(course),
			AveragePrice: averages[course],
			ItemCount:    int64(counts[course]),
		}
		if err := write(models.TopicCategoryAverages, record); err != nil {
			return written, err
		}
	}
	return written, nil
}
