package session

import (
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/chrisdamba/chefmenu/internal/catalog"
	"github.com/chrisdamba/chefmenu/internal/models"
	"github.com/chrisdamba/chefmenu/internal/output"
	"github.com/rs/zerolog"
)

const removePrompt = "Are you sure you want to remove this item?"

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// AutoConfirm answers yes without asking.
var AutoConfirm = ConfirmFunc(func(string) bool { return true })

// Listing is what the browsing view shows.
type Listing struct {
	Items    []models.MenuItem
	Averages map[models.Course]string
	Counts   map[models.Course]int
}

// FilterResult is what the filter view shows.
type FilterResult struct {
	Course models.Course
	Items  []models.MenuItem
	Count  int
}

// Session wires the presentation views to the single catalog store of a
// run. Successful changes are logged and published to the output
// destination; publishing failures are logged but never undo a change.
type Session struct {
	store  *catalog.Store
	output output.OutputDestination
	log    zerolog.Logger
	now    func() time.Time
}

func New(store *catalog.Store, dest output.OutputDestination, log zerolog.Logger) *Session {
	if dest == nil {
		dest = output.NopOutput{}
	}
	return &Session{
		store:  store,
		output: dest,
		log:    log,
		now:    time.Now,
	}
}

func (s *Session) Store() *catalog.Store {
	return s.store
}

func (s *Session) Listing() Listing {
	return Listing{
		Items:    s.store.Items(),
		Averages: s.store.Averages(),
		Counts:   s.store.Counts(),
	}
}

// Submit is the add-item form action.
func (s *Session) Submit(d models.Draft) (models.MenuItem, error) {
	item, err := s.store.AddItem(d)
	if err != nil {
		var ve catalog.ValidationError
		if errors.As(err, &ve) {
			s.log.Debug().Str("field", ve.Field()).Err(err).Msg("draft rejected")
		} else {
			s.log.Error().Err(err).Msg("failed to add menu item")
		}
		return models.MenuItem{}, err
	}

	s.log.Info().
		Str("id", item.ID).
		Str("item", item.ItemName).
		Str("category", string(item.Category)).
		Str("price", item.Price.StringFixed(2)).
		Str("intensity", string(item.Intensity)).
		Msg("menu item added")
	s.publish(models.TopicMenuItemAdded, models.EventMenuItemAdded, item)
	return item, nil
}

// Remove asks confirm before removing id. It reports whether an item was
// removed; a declined prompt or an unknown id removes nothing.
func (s *Session) Remove(id string, confirm Confirmer) bool {
	item, ok := s.store.Get(id)
	if !ok {
		s.log.Debug().Str("id", id).Msg("remove skipped, no such item")
		return false
	}
	if confirm != nil && !confirm.Confirm(removePrompt) {
		s.log.Debug().Str("id", id).Msg("remove cancelled")
		return false
	}
	if !s.store.RemoveItem(id) {
		return false
	}

	s.log.Info().Str("id", id).Str("item", item.ItemName).Msg("menu item removed")
	s.publish(models.TopicMenuItemRemoved, models.EventMenuItemRemoved, item)
	return true
}

func (s *Session) Filter(course models.Course) FilterResult {
	items := s.store.FilterByCategory(course)
	return FilterResult{
		Course: course,
		Items:  items,
		Count:  len(items),
	}
}

// Export writes a snapshot of the catalog to the session's output.
func (s *Session) Export(progress io.Writer) (int, error) {
	return output.ExportCatalog(s.output, s.store, progress)
}

// Close releases the output destination.
func (s *Session) Close() error {
	return s.output.Close()
}

func (s *Session) publish(topic, eventType string, item models.MenuItem) {
	msg, err := json.Marshal(output.NewItemEvent(eventType, item, s.now()))
	if err != nil {
		s.log.Error().Err(err).Str("topic", topic).Msg("failed to encode event")
		return
	}
	if err := s.output.WriteMessage(topic, msg); err != nil {
		s.log.Error().Err(err).Str("topic", topic).Msg("failed to write event")
	}
}
