package lyricsapi

// Suggestion is one candidate song returned by the suggest endpoint.
type Suggestion struct {
	Artist     string `json:"artist"`
	Title      string `json:"title"`
	AlbumTitle string `json:"album_title"`
	CoverURL   string `json:"cover_url"`
	Explicit   bool   `json:"explicit"`
}

// Wire shape of GET {base}/suggest/{query}.
type suggestResponse struct {
	Total int             `json:"total"`
	Data  []suggestRecord `json:"data"`
}

type suggestRecord struct {
	Title          string `json:"title"`
	ExplicitLyrics bool   `json:"explicit_lyrics"`
	Artist         struct {
		Name string `json:"name"`
	} `json:"artist"`
	Album struct {
		Title       string `json:"title"`
		CoverMedium string `json:"cover_medium"`
	} `json:"album"`
}

// Wire shape of GET {base}/v1/{artist}/{title}.
type lyricsResponse struct {
	Lyrics string `json:"lyrics"`
}

func (r suggestRecord) toSuggestion() Suggestion {
	return Suggestion{
		Artist:     r.Artist.Name,
		Title:      r.Title,
		AlbumTitle: r.Album.Title,
		CoverURL:   r.Album.CoverMedium,
		Explicit:   r.ExplicitLyrics,
	}
}
