package factory

import (
	"time"

	"github.com/lexroom/lexroom/internal/dependencies/mocks"
	"github.com/lexroom/lexroom/internal/services/auth"
	"github.com/lexroom/lexroom/internal/services/room"
	"github.com/lexroom/lexroom/internal/storage/memory"
	"github.com/lexroom/lexroom/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, auth.DefaultConfig(), room.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// LoadTestDictionary loads a small dictionary for testing
func (t *TestApp) LoadTestDictionary() {
	t.WordsService.LoadWords([]string{
		"AA", "AB", "AD", "AE", "AG", "AH", "AI", "AL", "AM", "AN",
		"AR", "AS", "AT", "AW", "AX", "AY", "BA", "BE", "BI", "BO",
		"BY", "DE", "DO", "ED", "EF", "EH", "EL", "EM", "EN", "ER",
		"ES", "ET", "EX", "FA", "GO", "HA", "HE", "HI", "HO", "ID",
		"IF", "IN", "IS", "IT", "LA", "LI", "LO", "MA", "ME", "MI",
		"MU", "MY", "NA", "NE", "NO", "NU", "OD", "OE", "OF", "OH",
		"OI", "OK", "OM", "ON", "OP", "OR", "OS", "OW", "OX", "OY",
		"PA", "PE", "PI", "RE", "SH", "SI", "SO", "TA", "TI", "TO",
		"UH", "UM", "UN", "UP", "US", "UT", "WE", "WO", "XI", "XU",
		"YA", "YE", "YO", "ZA",
		"ACE", "ACT", "ADD", "AGE", "AID", "AIM", "AIR", "ALE", "AND",
		"ANT", "APE", "ARC", "ARE", "ARM", "ART", "ASH", "ASK", "ATE",
		"BAD", "BAG", "BAN", "BAR", "BAT", "BED", "BEE", "BET", "BIG",
		"CAB", "CAN", "CAP", "CAR", "CAT", "COT", "DOG", "DOT", "EAR",
		"EAT", "EGG", "END", "ERA", "FAR", "FIT", "GET", "HAT", "HEN",
		"HIT", "HOT", "ICE", "INK", "JAM", "KEY", "LET", "LOT", "MAP",
		"NET", "NOT", "OAR", "OLD", "ONE", "OUT", "PEN", "PET", "PIT",
		"RAT", "RED", "RUN", "SAT", "SEA", "SET", "SIT", "SUN", "TAN",
		"TAP", "TAR", "TEA", "TEN", "THE", "TIN", "TOE", "TON", "TOP",
		"USE", "VAN", "WAR", "WET", "WIN", "YES", "ZOO",
		"ABLE", "AREA", "BACK", "BALL", "BEAR", "BELL", "BIRD", "BLUE",
		"BOAT", "BOOK", "CARD", "CARE", "CASE", "CELL", "CITY", "COLD",
		"DARK", "DATE", "DEAL", "DEEP", "DOOR", "EAST", "EASY", "FACE",
		"FARM", "FAST", "FIRE", "FISH", "FOOD", "GAME", "GOLD", "GOOD",
		"HAND", "HELP", "HOME", "HOPE", "LAND", "LATE", "LINE",
		"LOOK", "LOVE", "MAKE", "MOON", "NAME", "NEAR", "NOTE", "OPEN",
		"OVER", "PLAY", "RAIN", "READ", "ROAD", "ROOM", "SHIP", "SNOW",
		"SONG", "STAR", "TEST", "TIME", "TREE", "WALL", "WIND", "WORD",
		"HELLO", "HOUSE", "LIGHT", "MONEY", "MUSIC", "NIGHT", "PAPER", "PARTY",
		"PLACE", "PLANT", "POINT", "POWER", "RIVER", "SOUND", "SPACE",
		"STONE", "TABLE", "WATER", "WORLD",
	})
}
