package output

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/chrisdamba/chefmenu/internal/models"
)

// MenuItemRecord is one catalog row as written to the menu_items topic.
type MenuItemRecord struct {
	ID          string  `json:"id" parquet:"name=id, type=BYTE_ARRAY, convertedtype=UTF8"`
	ItemName    string  `json:"itemName" parquet:"name=itemName, type=BYTE_ARRAY, convertedtype=UTF8"`
	Description string  `json:"description" parquet:"name=description, type=BYTE_ARRAY, convertedtype=UTF8"`
	Category    string  `json:"category" parquet:"name=category, type=BYTE_ARRAY, convertedtype=UTF8"`
	Price       float64 `json:"price" parquet:"name=price, type=DOUBLE"`
	Intensity   string  `json:"intensity" parquet:"name=intensity, type=BYTE_ARRAY, convertedtype=UTF8"`
	Image       string  `json:"image" parquet:"name=image, type=BYTE_ARRAY, convertedtype=UTF8"`
	Ingredients string  `json:"ingredients" parquet:"name=ingredients, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// CategoryAverageRecord summarises one course.
type CategoryAverageRecord struct {
	Category     string `json:"category" parquet:"name=category, type=BYTE_ARRAY, convertedtype=UTF8"`
	AveragePrice string `json:"averagePrice" parquet:"name=averagePrice, type=BYTE_ARRAY, convertedtype=UTF8"`
	ItemCount    int64  `json:"itemCount" parquet:"name=itemCount, type=INT64"`
}

// ItemEvent records a change made to the catalog during the session.
type ItemEvent struct {
	Timestamp int64   `json:"timestamp" parquet:"name=timestamp, type=INT64"`
	EventType string  `json:"eventType" parquet:"name=eventType, type=BYTE_ARRAY, convertedtype=UTF8"`
	ItemID    string  `json:"itemId" parquet:"name=itemId, type=BYTE_ARRAY, convertedtype=UTF8"`
	ItemName  string  `json:"itemName" parquet:"name=itemName, type=BYTE_ARRAY, convertedtype=UTF8"`
	Category  string  `json:"category" parquet:"name=category, type=BYTE_ARRAY, convertedtype=UTF8"`
	Price     float64 `json:"price" parquet:"name=price, type=DOUBLE"`
}

func NewMenuItemRecord(item models.MenuItem) MenuItemRecord {
	return MenuItemRecord{
		ID:          item.ID,
		ItemName:    item.ItemName,
		Description: item.Description,
		Category:    string(item.Category),
		Price:       item.Price.InexactFloat64(),
		Intensity:   string(item.Intensity),
		Image:       item.Image,
		Ingredients: strings.Join(item.Ingredients, ", "),
	}
}

func NewItemEvent(eventType string, item models.MenuItem, at time.Time) ItemEvent {
	return ItemEvent{
		Timestamp: at.Unix(),
		EventType: eventType,
		ItemID:    item.ID,
		ItemName:  item.ItemName,
		Category:  string(item.Category),
		Price:     item.Price.InexactFloat64(),
	}
}

// schemaFor returns a zero record used by the parquet writer to derive the
// column layout of topic.
func schemaFor(topic string) (interface{}, error) {
	switch topic {
	case models.TopicMenuItems:
		return new(MenuItemRecord), nil
	case models.TopicCategoryAverages:
		return new(CategoryAverageRecord), nil
	case models.TopicMenuItemAdded, models.TopicMenuItemRemoved:
		return new(ItemEvent), nil
	default:
		return nil, fmt.Errorf("no schema for topic %s", topic)
	}
}

func decodeRecord(topic string, msg []byte) (interface{}, error) {
	switch topic {
	case models.TopicMenuItems:
		var r MenuItemRecord
		err := json.Unmarshal(msg, &r)
		return r, err
	case models.TopicCategoryAverages:
		var r CategoryAverageRecord
		err := json.Unmarshal(msg, &r)
		return r, err
	case models.TopicMenuItemAdded, models.TopicMenuItemRemoved:
		var r ItemEvent
		err := json.Unmarshal(msg, &r)
		return r, err
	default:
		return nil, fmt.Errorf("no schema for topic %s", topic)
	}
}
