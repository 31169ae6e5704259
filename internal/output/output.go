package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/chrisdamba/chefmenu/internal/models"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

type OutputDestination interface {
	WriteMessage(topic string, msg []byte) error
	Close() error
}

// NewOutputDestination picks the destination named by cfg.OutputFormat.
// Console output goes to stdout.
func NewOutputDestination(cfg *models.Config, stdout io.Writer) (OutputDestination, error) {
	switch cfg.OutputFormat {
	case models.OutputFormatNone, "":
		return NopOutput{}, nil
	case models.OutputFormatConsole:
		return NewConsoleOutput(stdout), nil
	case models.OutputFormatJSON:
		return NewJSONOutput(cfg.OutputPath, cfg.OutputFolder), nil
	case models.OutputFormatCSV:
		return NewCSVOutput(cfg.OutputPath, cfg.OutputFolder), nil
	case models.OutputFormatParquet:
		return NewParquetOutput(cfg.OutputPath, cfg.OutputFolder), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", cfg.OutputFormat)
	}
}

// NopOutput discards every message.
type NopOutput struct{}

func (NopOutput) WriteMessage(string, []byte) error { return nil }
func (NopOutput) Close() error                      { return nil }

type ConsoleOutput struct {
	w io.Writer
}

func NewConsoleOutput(w io.Writer) *ConsoleOutput {
	return &ConsoleOutput{w: w}
}

func (c *ConsoleOutput) WriteMessage(topic string, msg []byte) error {
	if _, err := fmt.Fprintf(c.w, "[%s] %s\n", topic, msg); err != nil {
		return fmt.Errorf("failed to write to console: %w", err)
	}
	return nil
}

func (c *ConsoleOutput) Close() error { return nil }

type JSONOutput struct {
	basePath string
	folder   string
	files    map[string]*os.File
}

func NewJSONOutput(basePath, folder string) *JSONOutput {
	return &JSONOutput{
		basePath: basePath,
		folder:   folder,
		files:    make(map[string]*os.File),
	}
}

func (j *JSONOutput) WriteMessage(topic string, msg []byte) error {
	file, ok := j.files[topic]
	if !ok {
		path, err := topicFile(j.basePath, j.folder, topic, "json")
		if err != nil {
			return err
		}
		file, err = os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create file for topic %s: %w", topic, err)
		}
		j.files[topic] = file
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, msg); err != nil {
		return fmt.Errorf("invalid message for topic %s: %w", topic, err)
	}
	compact.WriteByte('\n')
	if _, err := file.Write(compact.Bytes()); err != nil {
		return fmt.Errorf("failed to write message to topic %s: %w", topic, err)
	}
	return nil
}

func (j *JSONOutput) Close() error {
	var firstErr error
	for topic, file := range j.files {
		if err := file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(j.files, topic)
	}
	return firstErr
}

// CSVOutput writes one file per topic. The header is taken from the keys
// of the first message, sorted.
type CSVOutput struct {
	basePath string
	folder   string
	files    map[string]*os.File
	writers  map[string]*csv.Writer
	headers  map[string][]string
}

func NewCSVOutput(basePath, folder string) *CSVOutput {
	return &CSVOutput{
		basePath: basePath,
		folder:   folder,
		files:    make(map[string]*os.File),
		writers:  make(map[string]*csv.Writer),
		headers:  make(map[string][]string),
	}
}

func (c *CSVOutput) WriteMessage(topic string, msg []byte) error {
	dec := json.NewDecoder(bytes.NewReader(msg))
	dec.UseNumber()
	var event map[string]interface{}
	if err := dec.Decode(&event); err != nil {
		return fmt.Errorf("invalid message for topic %s: %w", topic, err)
	}

	csvWriter, ok := c.writers[topic]
	if !ok {
		path, err := topicFile(c.basePath, c.folder, topic, "csv")
		if err != nil {
			return err
		}
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create file for topic %s: %w", topic, err)
		}
		csvWriter = csv.NewWriter(file)
		c.files[topic] = file
		c.writers[topic] = csvWriter

		headers := c.getHeaders(event)
		if err := csvWriter.Write(headers); err != nil {
			return err
		}
		c.headers[topic] = headers
	}

	row := make([]string, len(c.headers[topic]))
	for i, header := range c.headers[topic] {
		if value, ok := event[header]; ok && value != nil {
			row[i] = fmt.Sprintf("%v", value)
		}
	}

	if err := csvWriter.Write(row); err != nil {
		return err
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

func (c *CSVOutput) getHeaders(event map[string]interface{}) []string {
	headers := make([]string, 0, len(event))
	for key := range event {
		headers = append(headers, key)
	}
	sort.Strings(headers)
	return headers
}

func (c *CSVOutput) Close() error {
	var firstErr error
	for topic, csvWriter := range c.writers {
		csvWriter.Flush()
		if err := csvWriter.Error(); err != nil && firstErr == nil {
			firstErr = err
		}
		if err := c.files[topic].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(c.writers, topic)
		delete(c.files, topic)
	}
	return firstErr
}

// ParquetOutput keeps one parquet writer per topic. Files are only
// complete once Close has run.
type ParquetOutput struct {
	basePath string
	folder   string
	mu       sync.Mutex
	writers  map[string]*writer.ParquetWriter
	files    map[string]source.ParquetFile
}

func NewParquetOutput(basePath, folder string) *ParquetOutput {
	return &ParquetOutput{
		basePath: basePath,
		folder:   folder,
		writers:  make(map[string]*writer.ParquetWriter),
		files:    make(map[string]source.ParquetFile),
	}
}

func (p *ParquetOutput) WriteMessage(topic string, msg []byte) error {
	record, err := decodeRecord(topic, msg)
	if err != nil {
		return fmt.Errorf("invalid message for topic %s: %w", topic, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	pw, ok := p.writers[topic]
	if !ok {
		pw, err = p.createNewWriter(topic)
		if err != nil {
			return fmt.Errorf("failed to create new writer: %w", err)
		}
	}

	if err := pw.Write(record); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

func (p *ParquetOutput) createNewWriter(topic string) (*writer.ParquetWriter, error) {
	schema, err := schemaFor(topic)
	if err != nil {
		return nil, err
	}

	path, err := topicFile(p.basePath, p.folder, topic, "parquet")
	if err != nil {
		return nil, err
	}
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create local file writer: %w", err)
	}

	pw, err := writer.NewParquetWriter(fw, schema, 1)
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to create ParquetWriter: %w", err)
	}

	p.writers[topic] = pw
	p.files[topic] = fw
	return pw, nil
}

func (p *ParquetOutput) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for topic, pw := range p.writers {
		if err := pw.WriteStop(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("error closing writer for topic %s: %w", topic, err)
		}
		if err := p.files[topic].Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("error closing file for topic %s: %w", topic, err)
		}
		delete(p.writers, topic)
		delete(p.files, topic)
	}
	return firstErr
}

// topicFile creates <basePath>/<folder>/<topic>/ and returns the path of
// the data file inside it.
func topicFile(basePath, folder, topic, ext string) (string, error) {
	dir := filepath.Join(basePath, folder, topic)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return filepath.Join(dir, "data."+ext), nil
}
