package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/Maverick7728/Proactive-Work-Life-Assistant/internal/config"
	"github.com/Maverick7728/Proactive-Work-Life-Assistant/pkg/store"
)

// Seeds the data directory with a small sample roster so the assistant
// is usable out of the box. Existing files are left alone.
func main() {
	cfg := config.Load()

	color.Cyan("🚀 Seeding sample roster into %s", cfg.App.DataDir)

	if err := os.MkdirAll(cfg.App.DataDir, 0o755); err != nil {
		color.Red("Failed to create data dir: %v", err)
		os.Exit(1)
	}

	contacts := []store.Person{
		{Name: "Rahul Sharma", Email: "rahul.sharma@example.com", Department: "Engineering", Title: "Backend Engineer"},
		{Name: "Priya Patel", Email: "priya.patel@example.com", Department: "Engineering", Title: "Frontend Engineer"},
		{Name: "Sam Wilson", Email: "sam.wilson@example.com", Department: "Product", Title: "Product Manager"},
		{Name: "Samantha Lee", Email: "samantha.lee@example.com", Department: "Design", Title: "UX Designer"},
		{Name: "Arjun Mehta", Email: "arjun.mehta@example.com", Department: "Engineering", Title: "Engineering Manager"},
	}

	profiles := []store.Person{
		{Name: "Alice Johnson", Email: "alice@example.com", Department: "Engineering", Title: "Tech Lead"},
	}

	seedFile(filepath.Join(cfg.App.DataDir, "team_contacts.json"), contacts)
	seedFile(filepath.Join(cfg.App.DataDir, "user_profiles.json"), profiles)

	color.Green("Done. %d contacts, %d profiles.", len(contacts), len(profiles))
}

func seedFile(path string, people []store.Person) {
	if _, err := os.Stat(path); err == nil {
		color.Yellow("Skipping %s, already exists", path)
		return
	}

	raw, err := json.MarshalIndent(people, "", "  ")
	if err != nil {
		color.Red("Failed to encode %s: %v", path, err)
		os.Exit(1)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		color.Red("Failed to write %s: %v", path, err)
		os.Exit(1)
	}
	color.Green("Wrote %s", path)
}
