package models

const (
	EventMenuItemAdded   = "MenuItemAdded"
	EventMenuItemRemoved = "MenuItemRemoved"

	TopicMenuItemAdded    = "menu_item_added"
	TopicMenuItemRemoved  = "menu_item_removed"
	TopicMenuItems        = "menu_items"
	TopicCategoryAverages = "category_averages"

	OutputFormatNone    = "none"
	OutputFormatConsole = "console"
	OutputFormatJSON    = "json"
	OutputFormatCSV     = "csv"
	OutputFormatParquet = "parquet"
)
