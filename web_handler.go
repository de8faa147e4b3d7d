// web_handler.go
package main

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	uuid "github.com/satori/go.uuid"

	"github.com/kennedy-blip/Data-transformation/config"
	"github.com/kennedy-blip/Data-transformation/domain/models"
	"github.com/kennedy-blip/Data-transformation/pipeline"
)

// Dataset is one uploaded table plus its pipeline. Datasets live in memory
// for the session and are dropped when idle; there is no persistence.
type Dataset struct {
	ID         string
	Name       string
	Pipeline   *pipeline.Pipeline
	CreatedAt  time.Time
	LastAccess time.Time

	mu sync.Mutex
}

// Lock serializes pipeline access for one dataset; the core itself is not
// safe for concurrent use.
func (d *Dataset) Lock()   { d.mu.Lock() }
func (d *Dataset) Unlock() { d.mu.Unlock() }

var (
	datasets   = map[string]*Dataset{}
	datasetsMu sync.Mutex
)

func registerDataset(name string, rows []pipeline.Row, columns []string) *Dataset {
	ds := &Dataset{
		ID:         uuid.NewV4().String(),
		Name:       name,
		Pipeline:   pipeline.New(rows, columns),
		CreatedAt:  time.Now(),
		LastAccess: time.Now(),
	}
	datasetsMu.Lock()
	datasets[ds.ID] = ds
	datasetsMu.Unlock()
	return ds
}

func lookupDataset(id string) (*Dataset, bool) {
	datasetsMu.Lock()
	defer datasetsMu.Unlock()
	ds, ok := datasets[id]
	if ok {
		ds.LastAccess = time.Now()
	}
	return ds, ok
}

func removeIdleDatasets(maxIdle time.Duration) {
	datasetsMu.Lock()
	defer datasetsMu.Unlock()
	for id, ds := range datasets {
		if time.Since(ds.LastAccess) > maxIdle {
			delete(datasets, id)
		}
	}
}

// handleUpload accepts a multipart file upload, unpacks archives, imports
// the rows and registers a dataset for the pipeline API.
func handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Error uploading file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	dir := filepath.Join(config.GetConfig().UploadDir, uuid.NewV4().String())
	if err := os.MkdirAll(dir, 0755); err != nil {
		http.Error(w, "Error saving file", http.StatusInternalServerError)
		return
	}
	filePath := filepath.Join(dir, filepath.Base(header.Filename))
	dst, err := os.Create(filePath)
	if err != nil {
		http.Error(w, "Error saving file: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if _, err = io.Copy(dst, file); err != nil {
		dst.Close()
		http.Error(w, "Error saving file", http.StatusInternalServerError)
		return
	}
	dst.Close()

	ds, err := loadDatasetFile(filePath)
	if err != nil {
		log.Printf("Error importing %s: %v", header.Filename, err)
		http.Error(w, "Error importing file: "+err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, models.UploadResponse{
		ID:       ds.ID,
		Name:     ds.Name,
		Columns:  ds.Pipeline.Columns(),
		RowCount: len(ds.Pipeline.Rows()),
		Profiles: ds.Pipeline.Profiles(),
	})
}

// loadDatasetFile runs the ingestion chain: unpack, import, register.
func loadDatasetFile(filePath string) (*Dataset, error) {
	unpacked, err := unpackArchive(filePath)
	if err != nil {
		return nil, err
	}
	if unpacked != "" {
		filePath = unpacked
	}

	rows, columns, err := importDataset(filePath)
	if err != nil {
		return nil, err
	}
	return registerDataset(filepath.Base(filePath), rows, columns), nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{Error: message})
}
