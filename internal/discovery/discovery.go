package discovery

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/afero"

	"imagepicker/internal/domain"
	"imagepicker/internal/eventbus"
)

// Kind filters
const (
	FilterBoth   = "both"
	FilterImages = "images"
	FilterVideos = "videos"
)

// maxDepth is how many directory levels below the root are scanned
const maxDepth = 5

// DiscoveryService finds media files in the filesystem
type DiscoveryService interface {
	Scan(ctx context.Context, root string) ([]domain.Item, error)
}

// discoveryService is the concrete implementation
type discoveryService struct {
	fs     afero.Fs
	bus    eventbus.EventBus
	filter string

	mu         sync.Mutex
	isScanning bool
}

// NewDiscoveryService creates a new discovery service. bus may be nil.
func NewDiscoveryService(fs afero.Fs, bus eventbus.EventBus, filter string) DiscoveryService {
	if filter == "" {
		filter = FilterBoth
	}
	return &discoveryService{
		fs:     fs,
		bus:    bus,
		filter: filter,
	}
}

// NormalizeFilter validates a kind filter name
func NormalizeFilter(filter string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(filter)) {
	case "", FilterBoth, "all":
		return FilterBoth, nil
	case FilterImages, "image":
		return FilterImages, nil
	case FilterVideos, "video":
		return FilterVideos, nil
	default:
		return "", fmt.Errorf("unknown filter %q (want both, images or videos)", filter)
	}
}

// Scan walks root and returns the media items it finds, sorted by path, with
// PositionIndex set to each item's place in that order
func (ds *discoveryService) Scan(ctx context.Context, root string) ([]domain.Item, error) {
	ds.mu.Lock()
	if ds.isScanning {
		ds.mu.Unlock()
		return nil, fmt.Errorf("scan already in progress")
	}
	ds.isScanning = true
	ds.mu.Unlock()

	defer func() {
		ds.mu.Lock()
		ds.isScanning = false
		ds.mu.Unlock()
	}()

	ds.publish(eventbus.ScanStartedEvent{Root: root})

	items, err := ds.scanDirectory(ctx, root)
	if err != nil {
		ds.publish(eventbus.ErrorEvent{
			Message: fmt.Sprintf("Failed to scan %s", root),
			Err:     err,
		})
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	ds.publish(eventbus.ItemsDiscoveredEvent{Root: root, Items: items})
	ds.publish(eventbus.ScanCompletedEvent{Root: root, ItemsFound: len(items)})
	return items, nil
}

func (ds *discoveryService) publish(e eventbus.DomainEvent) {
	if ds.bus != nil {
		ds.bus.Publish(e)
	}
}

// scanDirectory recursively collects media files below root
func (ds *discoveryService) scanDirectory(ctx context.Context, root string) ([]domain.Item, error) {
	var items []domain.Item

	err := afero.Walk(ds.fs, root, func(path string, info os.FileInfo, err error) error {
		// Check context cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			if path == root {
				return err
			}
			log.Printf("Error walking path %s: %v", path, err)
			return nil
		}

		if info.IsDir() {
			if path == root {
				return nil
			}
			relPath, _ := filepath.Rel(root, path)
			if strings.Count(relPath, string(filepath.Separator)) >= maxDepth {
				return filepath.SkipDir
			}
			if skipDir(info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(info.Name(), ".") {
			return nil
		}
		kind, ok := Classify(path)
		if !ok || !passes(kind, ds.filter) {
			return nil
		}
		items = append(items, domain.Item{
			Source: path,
			Kind:   kind,
			Name:   info.Name(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Source < items[j].Source
	})
	for i := range items {
		items[i].PositionIndex = i
	}
	return items, nil
}

// skipDir reports directories that never hold user media worth picking
func skipDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	switch name {
	case "node_modules", "vendor", "dist", "build", "target", "__pycache__", "venv":
		return true
	}
	return false
}

// Classify returns the media kind for a path based on its extension
func Classify(path string) (domain.MediaKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".tif", ".tiff":
		return domain.KindImage, true
	case ".mp4", ".mov", ".mkv", ".webm", ".avi", ".m4v":
		return domain.KindVideo, true
	default:
		return "", false
	}
}

func passes(kind domain.MediaKind, filter string) bool {
	switch filter {
	case FilterImages:
		return kind == domain.KindImage
	case FilterVideos:
		return kind == domain.KindVideo
	default:
		return true
	}
}
