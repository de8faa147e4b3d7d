package main

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/kennedy-blip/Data-transformation/config"
)

func main() {
	cfg := config.GetConfig()

	if err := os.MkdirAll(cfg.UploadDir, 0755); err != nil {
		log.Fatalln("cannot create upload dir", err)
	}

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		tmpl := template.Must(template.ParseFiles("upload.html"))
		if err := tmpl.Execute(w, nil); err != nil {
			http.Error(w, "Error rendering upload form", http.StatusInternalServerError)
		}
	})
	http.HandleFunc("/upload", handleUpload)
	http.HandleFunc("/api/", handleAPI)

	go func() {
		for {
			time.Sleep(time.Minute)
			removeIdleDatasets(2 * time.Hour)
			if err := removeOldFiles(cfg.UploadDir, time.Now().Add(-2*time.Hour)); err != nil {
				log.Printf("cleanup error: %v", err)
			}
		}
	}()

	fmt.Println("listen on:", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, nil); err != nil {
		log.Fatalln("server error", err)
	}
}

// removeOldFiles deletes everything under dirPath older than maxAge,
// recursing into per-upload directories.
func removeOldFiles(dirPath string, maxAge time.Time) error {
	files, err := os.ReadDir(dirPath)
	if err != nil {
		return err
	}

	for _, file := range files {
		filePath := filepath.Join(dirPath, file.Name())
		if file.IsDir() {
			if err := removeOldFiles(filePath, maxAge); err != nil {
				return err
			}
			continue
		}
		fileStat, err := os.Stat(filePath)
		if err != nil {
			return err
		}
		if fileStat.ModTime().Before(maxAge) {
			if err := os.Remove(filePath); err != nil {
				return err
			}
			log.Printf("removed stale upload: %s", filePath)
		}
	}
	return nil
}
