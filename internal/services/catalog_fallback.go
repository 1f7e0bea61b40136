package services

import (
	"encoding/json"

	"design-studio/backend/internal/models/dtos"
)

const (
	heartSVG = "data:image/svg+xml;base64,PHN2ZyB3aWR0aD0iMTAwIiBoZWlnaHQ9IjEwMCIgdmlld0JveD0iMCAwIDEwMCAxMDAiIGZpbGw9Im5vbmUiIHhtbG5zPSJodHRwOi8vd3d3LnczLm9yZy8yMDAwL3N2ZyI+CjxwYXRoIGQ9Ik01MCA4NSBDNTAgODUgMTUgNjAgMTUgNDAgQzE1IDI1IDI1IDE1IDQwIDIwIEM0NSAxMCA1NSAxMCA2MCAyMCBDNzUgMTUgODUgMjUgODUgNDAgQzg1IDYwIDUwIDg1IDUwIDg1IFoiIGZpbGw9IiNFRjQ0NDQiLz4KPC9zdmc+"
	starSVG  = "data:image/svg+xml;base64,PHN2ZyB3aWR0aD0iMTAwIiBoZWlnaHQ9IjEwMCIgdmlld0JveD0iMCAwIDEwMCAxMDAiIGZpbGw9Im5vbmUiIHhtbG5zPSJodHRwOi8vd3d3LnczLm9yZy8yMDAwL3N2ZyI+Cjxwb2x5Z29uIHBvaW50cz0iNTAsMTAgNjEsMzUgOTAsMzUgNjksNTUgNzksODUgNTAsNzAgMjEsODUgMzEsNTUgMTAsMzUgMzksMzUiIGZpbGw9IiNGNTlFMEIiLz4KPC9zdmc+"
)

// fallbackElements is served by ListElements whenever the catalog is unavailable.
var fallbackElements = mustMarshal(dtos.ElementsResponse{
	Elements: []dtos.CatalogElement{
		{ID: "1", Title: "Heart", Category: "shapes", SVGURL: heartSVG, PreviewURL: heartSVG},
		{ID: "2", Title: "Star", Category: "shapes", SVGURL: starSVG, PreviewURL: starSVG},
	},
})

// emptyElements is served by SearchElements whenever the catalog is unavailable.
var emptyElements = mustMarshal(dtos.ElementsResponse{Elements: []dtos.CatalogElement{}})

func mustMarshal(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

// FallbackElements returns a copy of the static listing payload
func FallbackElements() json.RawMessage {
	return append(json.RawMessage(nil), fallbackElements...)
}

// EmptyElements returns a copy of the static search payload
func EmptyElements() json.RawMessage {
	return append(json.RawMessage(nil), emptyElements...)
}
