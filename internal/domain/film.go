package domain

// Genre is a fixed descriptive label attachable to films. Read-only reference
// data seeded at schema bootstrap.
type Genre struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Mpa is the MPA age rating of a film. Read-only reference data.
type Mpa struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"rating_title"`
}

// Film is the hydrated film record: the base row plus resolved genres, rating
// and the ids of users who liked it. Mpa is nil when the film has no rating.
type Film struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ReleaseDate Date    `json:"releaseDate"`
	Duration    int     `json:"duration"`
	Likes       []int   `json:"likes"`
	Genres      []Genre `json:"genres"`
	Mpa         *Mpa    `json:"mpa"`
}

// FilmPayload is the request body for creating or updating a film. Genres and
// rating arrive as bare id references and are resolved against the reference
// tables by the store.
type FilmPayload struct {
	ID          int        `json:"id"`
	Name        string     `json:"name" validate:"required,notblank"`
	Description string     `json:"description" validate:"max=200"`
	ReleaseDate Date       `json:"releaseDate" validate:"releasedate"`
	Duration    int        `json:"duration" validate:"required,gt=0"`
	Genres      []GenreRef `json:"genres" validate:"omitempty,dive"`
	Mpa         *MpaRef    `json:"mpa"`
}

type GenreRef struct {
	ID int `json:"id" validate:"required,gt=0"`
}

type MpaRef struct {
	ID int `json:"id" validate:"required,gt=0"`
}

// Film converts the payload into a domain film with unresolved references.
func (p FilmPayload) Film() *Film {
	film := &Film{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		ReleaseDate: p.ReleaseDate,
		Duration:    p.Duration,
		Likes:       []int{},
		Genres:      make([]Genre, 0, len(p.Genres)),
	}
	for _, g := range p.Genres {
		film.Genres = append(film.Genres, Genre{ID: g.ID})
	}
	if p.Mpa != nil {
		film.Mpa = &Mpa{ID: p.Mpa.ID}
	}
	return film
}
