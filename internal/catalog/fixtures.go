package catalog

import "github.com/iliyamo/fixture-tickets/internal/model"

var teams = []string{
	"Manchester United",
	"Liverpool FC",
	"Arsenal",
	"Chelsea",
	"Manchester City",
	"Tottenham Hotspur",
	"Newcastle United",
	"Brighton & Hove",
	"Aston Villa",
	"West Ham United",
}

var venues = []string{
	"Old Trafford",
	"Anfield",
	"Emirates Stadium",
	"Stamford Bridge",
	"Etihad Stadium",
	"Tottenham Hotspur Stadium",
	"St. James' Park",
	"American Express Stadium",
	"Villa Park",
	"London Stadium",
}

// DefaultFixtures is the demo season shipped with the service.
func DefaultFixtures() []model.Fixture {
	return []model.Fixture{
		{ID: "1", HomeTeam: "Manchester United", AwayTeam: "Liverpool FC", Date: "2026-01-15", Time: "15:00", Venue: "Old Trafford", UnitPrice: 85, Capacity: 200, SeatsRemaining: 156, ImageURL: "https://images.unsplash.com/photo-1489944440615-453fc2b6a9a9?w=800"},
		{ID: "2", HomeTeam: "Arsenal", AwayTeam: "Chelsea", Date: "2026-01-18", Time: "17:30", Venue: "Emirates Stadium", UnitPrice: 95, Capacity: 180, SeatsRemaining: 89, ImageURL: "https://images.unsplash.com/photo-1522778119026-d647f0596c20?w=800"},
		{ID: "3", HomeTeam: "Manchester City", AwayTeam: "Tottenham Hotspur", Date: "2026-01-20", Time: "20:00", Venue: "Etihad Stadium", UnitPrice: 110, Capacity: 250, SeatsRemaining: 203, ImageURL: "https://images.unsplash.com/photo-1574629810360-7efbbe195018?w=800"},
		{ID: "4", HomeTeam: "Newcastle United", AwayTeam: "Aston Villa", Date: "2026-01-22", Time: "14:00", Venue: "St. James' Park", UnitPrice: 65, Capacity: 200, SeatsRemaining: 178, ImageURL: "https://images.unsplash.com/photo-1431324155629-1a6deb1dec8d?w=800"},
		{ID: "5", HomeTeam: "West Ham United", AwayTeam: "Brighton & Hove", Date: "2026-01-25", Time: "19:45", Venue: "London Stadium", UnitPrice: 55, Capacity: 280, SeatsRemaining: 220, ImageURL: "https://images.unsplash.com/photo-1508098682722-e99c43a406b2?w=800"},
		{ID: "6", HomeTeam: "Liverpool FC", AwayTeam: "Manchester City", Date: "2026-01-28", Time: "16:30", Venue: "Anfield", UnitPrice: 125, Capacity: 180, SeatsRemaining: 45, ImageURL: "https://images.unsplash.com/photo-1560272564-c83b66b1ad12?w=800"},
	}
}

// DefaultPaymentDetails are the transfer instructions shown to patrons.
func DefaultPaymentDetails() model.PaymentDetails {
	return model.PaymentDetails{
		Bank: model.BankAccount{
			BankName:      "National Bank",
			AccountNumber: "1234567890123456",
			AccountName:   "GameTix Payments Ltd",
		},
		MobileMoney: model.MobileMoney{
			Number: "+1 234 567 8900",
			Name:   "GameTix Mobile",
		},
	}
}
