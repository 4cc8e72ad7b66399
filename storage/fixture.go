package storage

import "github.com/pragmatical/ngsa-app/core"

// SampleMovies returns the fixture catalog used by the in-memory run mode and
// the seed command. IDs follow the IMDb title-id convention.
func SampleMovies() []core.Movie {
	return []core.Movie{
		{
			ID: "tt0111161", Title: "The Shawshank Redemption", Year: 1994, Runtime: 142,
			Genres: []string{"Drama"}, Directors: []string{"Frank Darabont"},
			Cast: []string{"Tim Robbins", "Morgan Freeman"}, Rating: 9.3,
			Plot: "Two imprisoned men bond over a number of years, finding solace and eventual redemption through acts of common decency.",
		},
		{
			ID: "tt0068646", Title: "The Godfather", Year: 1972, Runtime: 175,
			Genres: []string{"Crime", "Drama"}, Directors: []string{"Francis Ford Coppola"},
			Cast: []string{"Marlon Brando", "Al Pacino", "James Caan"}, Rating: 9.2,
			Plot: "The aging patriarch of an organized crime dynasty transfers control of his empire to his reluctant son.",
		},
		{
			ID: "tt0071562", Title: "The Godfather Part II", Year: 1974, Runtime: 202,
			Genres: []string{"Crime", "Drama"}, Directors: []string{"Francis Ford Coppola"},
			Cast: []string{"Al Pacino", "Robert De Niro", "Robert Duvall"}, Rating: 9.0,
		},
		{
			ID: "tt0468569", Title: "The Dark Knight", Year: 2008, Runtime: 152,
			Genres: []string{"Action", "Crime", "Drama"}, Directors: []string{"Christopher Nolan"},
			Cast: []string{"Christian Bale", "Heath Ledger", "Aaron Eckhart"}, Rating: 9.0,
		},
		{
			ID: "tt0110912", Title: "Pulp Fiction", Year: 1994, Runtime: 154,
			Genres: []string{"Crime", "Drama"}, Directors: []string{"Quentin Tarantino"},
			Cast: []string{"John Travolta", "Uma Thurman", "Samuel L. Jackson"}, Rating: 8.9,
		},
		{
			ID: "tt0108052", Title: "Schindler's List", Year: 1993, Runtime: 195,
			Genres: []string{"Biography", "Drama", "History"}, Directors: []string{"Steven Spielberg"},
			Cast: []string{"Liam Neeson", "Ralph Fiennes", "Ben Kingsley"}, Rating: 8.9,
		},
		{
			ID: "tt0167260", Title: "The Lord of the Rings: The Return of the King", Year: 2003, Runtime: 201,
			Genres: []string{"Adventure", "Drama", "Fantasy"}, Directors: []string{"Peter Jackson"},
			Cast: []string{"Elijah Wood", "Viggo Mortensen", "Ian McKellen"}, Rating: 8.9,
		},
		{
			ID: "tt0133093", Title: "The Matrix", Year: 1999, Runtime: 136,
			Genres: []string{"Action", "Sci-Fi"}, Directors: []string{"Lana Wachowski", "Lilly Wachowski"},
			Cast: []string{"Keanu Reeves", "Laurence Fishburne", "Carrie-Anne Moss"}, Rating: 8.7,
		},
		{
			ID: "tt0109830", Title: "Forrest Gump", Year: 1994, Runtime: 142,
			Genres: []string{"Drama", "Romance"}, Directors: []string{"Robert Zemeckis"},
			Cast: []string{"Tom Hanks", "Robin Wright", "Gary Sinise"}, Rating: 8.8,
		},
		{
			ID: "tt1375666", Title: "Inception", Year: 2010, Runtime: 148,
			Genres: []string{"Action", "Adventure", "Sci-Fi"}, Directors: []string{"Christopher Nolan"},
			Cast: []string{"Leonardo DiCaprio", "Joseph Gordon-Levitt", "Elliot Page"}, Rating: 8.8,
		},
		{
			ID: "tt0137523", Title: "Fight Club", Year: 1999, Runtime: 139,
			Genres: []string{"Drama"}, Directors: []string{"David Fincher"},
			Cast: []string{"Brad Pitt", "Edward Norton", "Helena Bonham Carter"}, Rating: 8.8,
		},
		{
			ID: "tt0816692", Title: "Interstellar", Year: 2014, Runtime: 169,
			Genres: []string{"Adventure", "Drama", "Sci-Fi"}, Directors: []string{"Christopher Nolan"},
			Cast: []string{"Matthew McConaughey", "Anne Hathaway", "Jessica Chastain"}, Rating: 8.7,
		},
	}
}
