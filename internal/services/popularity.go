package services

import (
	"log"
	"sync"
	"time"

	"coltrane/internal/db"
	"coltrane/internal/models"
	"coltrane/internal/utils"
)

// PopularityService recomputes snippet popularity scores in the background.
// Bookmark, rating and download events schedule an update; a worker batches
// and dedupes them so bursts on one snippet cost a single recompute.
type PopularityService struct {
	queue   chan uint // snippet IDs awaiting recompute
	pending map[uint]bool
	mu      sync.Mutex
}

var (
	popularityService *PopularityService
	once              sync.Once
)

// GetPopularityService returns the singleton and starts its worker on first use.
func GetPopularityService() *PopularityService {
	once.Do(func() {
		popularityService = &PopularityService{
			queue:   make(chan uint, 1000),
			pending: make(map[uint]bool),
		}
		go popularityService.worker()
	})
	return popularityService
}

// ScheduleUpdate queues a snippet for recompute, coalescing duplicates.
func (s *PopularityService) ScheduleUpdate(snippetID uint) {
	s.mu.Lock()
	if s.pending[snippetID] {
		s.mu.Unlock()
		return
	}
	s.pending[snippetID] = true
	s.mu.Unlock()

	select {
	case s.queue <- snippetID:
	default:
		// Queue full; drop the request and clear the pending mark.
		s.mu.Lock()
		delete(s.pending, snippetID)
		s.mu.Unlock()
		log.Printf("Popularity queue full, skipping snippet %d", snippetID)
	}
}

func (s *PopularityService) worker() {
	batch := make([]uint, 0, 50)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case snippetID := <-s.queue:
			batch = append(batch, snippetID)
			if len(batch) >= 50 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		}
	}
}

func (s *PopularityService) processBatch(snippetIDs []uint) {
	for _, snippetID := range snippetIDs {
		s.updateSnippetPopularity(snippetID)

		s.mu.Lock()
		delete(s.pending, snippetID)
		s.mu.Unlock()
	}
}

func (s *PopularityService) updateSnippetPopularity(snippetID uint) {
	var snippet models.Snippet
	if err := db.DB.First(&snippet, snippetID).Error; err != nil {
		log.Printf("Popularity update failed: snippet %d not found", snippetID)
		return
	}

	var ratingSum int64
	db.DB.Model(&models.Rating{}).
		Where("snippet_id = ?", snippetID).
		Select("COALESCE(SUM(score), 0)").
		Scan(&ratingSum)

	var bookmarks int64
	db.DB.Model(&models.Bookmark{}).Where("snippet_id = ?", snippetID).Count(&bookmarks)

	newScore := utils.CalculatePopularity(int(ratingSum), int(bookmarks), snippet.Downloads)

	if err := db.DB.Model(&snippet).UpdateColumn("popularity", newScore).Error; err != nil {
		log.Printf("Failed to update popularity for snippet %d: %v", snippetID, err)
	}
}

// UpdateSnippetPopularitySync recomputes one snippet immediately, for paths
// that need the new score before responding.
func UpdateSnippetPopularitySync(snippetID uint) {
	GetPopularityService().updateSnippetPopularity(snippetID)
}
