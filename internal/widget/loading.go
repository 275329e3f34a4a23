package widget

// LoadingIndicator marks a cell whose availability is being fetched.
// It has no inputs and no state.
type LoadingIndicator struct{}

const loadingMarker = "•••"

// String returns the marker text
func (LoadingIndicator) String() string {
	return loadingMarker
}
