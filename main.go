package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/praveshpatels/google-search-console/config"
)

func main() {
	cfg := config.GetConfig()
	if err := os.MkdirAll(cfg.UploadDir, 0755); err != nil {
		log.Fatalln("cannot create upload dir", err)
	}

	go func() {
		for {
			time.Sleep(time.Minute)
			if err := removeOldFiles(cfg.UploadDir, time.Now().Add(-cfg.FileTTL)); err != nil {
				log.Printf("cleanup: %v", err)
			}
		}
	}()

	fmt.Println("listen on: http://localhost" + cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, routes()); err != nil {
		log.Fatalln("Error starting server:", err)
	}
}

func routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", handleIndex)
	mux.HandleFunc("/upload", handleUpload)
	mux.HandleFunc("/report", handleReport)
	mux.HandleFunc("/report/charts", handleCharts)
	mux.HandleFunc("/report/opportunities.csv", handleOpportunitiesCSV)
	mux.HandleFunc("/report/scatter.png", handleScatterPNG)
	mux.HandleFunc("/report/trend.png", handleTrendPNG)
	mux.HandleFunc("/report/summary.txt", handleSummaryText)
	return mux
}

// removeOldFiles deletes uploads whose mtime is before maxAge. Every
// report is recomputed from its file, so deleting the file is the
// whole expiry story.
func removeOldFiles(dirPath string, maxAge time.Time) error {
	files, err := os.ReadDir(dirPath)
	if err != nil {
		return err
	}
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		filePath := filepath.Join(dirPath, file.Name())
		info, err := file.Info()
		if err != nil {
			return err
		}
		if info.ModTime().Before(maxAge) {
			if err := os.Remove(filePath); err != nil {
				return err
			}
			log.Printf("Removed expired upload: %s", filePath)
		}
	}
	return nil
}
