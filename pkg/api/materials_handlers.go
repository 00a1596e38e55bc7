package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/edustack/platform/pkg/httputil"
	"github.com/edustack/platform/pkg/observability"
	"github.com/edustack/platform/pkg/storage"
)

// listMaterials handles GET /materials. Only PDF files in the bucket are
// course materials; everything else is filtered out before signing URLs.
func (s *Server) listMaterials(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		httputil.WriteServiceUnavailable(w, "Storage service not available")
		return
	}

	logger := observability.FromContext(r.Context())

	objects, err := s.cachedListing(r.Context(), logger)
	if err != nil {
		logger.WithError(err).Error("Failed to list materials")
		httputil.WriteInternalError(w, "Failed to retrieve materials")
		return
	}

	materials := make([]Material, 0, len(objects))
	for _, obj := range objects {
		if !strings.HasSuffix(strings.ToLower(obj.Key), ".pdf") {
			continue
		}

		// Presign failures are substituted with mock URLs, never surfaced.
		url, err := s.store.SignURL(r.Context(), obj.Key)
		if err != nil {
			logger.WithError(err).WithField("key", obj.Key).Warn("Falling back to mock material URL")
			s.recordPresignFallback()
			url = s.mockBase + "/" + obj.Key
		}

		materials = append(materials, Material{
			Name:       obj.Key,
			URL:        url,
			Size:       obj.Size,
			UploadedAt: obj.LastModified,
		})
	}

	httputil.WriteSuccess(w, MaterialsResponse{
		Materials: materials,
		Total:     len(materials),
		Page:      1,
		Pages:     1,
	})
}

func (s *Server) recordPresignFallback() {
	if s.metrics != nil {
		s.metrics.PresignFallbacksTotal.Inc()
	}
}

// cachedListing consults the Redis listing cache when configured and falls
// back to the object store. Cache failures are logged and absorbed.
func (s *Server) cachedListing(ctx context.Context, logger *observability.Logger) ([]storage.ObjectInfo, error) {
	if s.listingCache != nil {
		cached, err := s.listingCache.Get(ctx)
		if err != nil {
			logger.WithError(err).Warn("Listing cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	objects, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.listingCache != nil {
		if err := s.listingCache.Set(ctx, objects); err != nil {
			logger.WithError(err).Warn("Listing cache write failed")
		}
	}
	return objects, nil
}
