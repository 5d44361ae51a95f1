package chi

import (
	"net/http"

	"github.com/kailas-cloud/partpilot/internal/domain"
	"github.com/kailas-cloud/partpilot/internal/features"
)

// requireFeature answers 404 feature_disabled when f is off.
func requireFeature(flags features.Flags, f features.Feature) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if flags.Enabled(f) {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, http.StatusNotFound, CodeFeatureDisabled,
				domain.ErrFeatureDisabled.Error()+": "+string(f))
		})
	}
}
