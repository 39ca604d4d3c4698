package domain

// LocalResult is one raw venue row from the local-search provider.
// Title may still carry HTML markup; coordinates are opaque provider strings.
type LocalResult struct {
	Title       string
	Address     string
	RoadAddress string
	MapX        string
	MapY        string
}

// BlogResult is one raw review snippet from the blog-search provider.
type BlogResult struct {
	Title       string
	Description string
	BloggerName string
	PostDate    string
}

// CandidateVenue is a search hit prepared for enrichment.
// Name is HTML-stripped; Address prefers the road address when present.
type CandidateVenue struct {
	Name    string
	Address string
	MapX    string
	MapY    string
}
