package scene

// Logo is one entry of the built-in image catalogue.
type Logo struct {
	Symbol string
	URL    string
}

const coingecko = "https://assets.coingecko.com/coins/images/"

var Catalogue = []Logo{
	{"DOGE", coingecko + "5/large/dogecoin.png"},
	{"SHIB", coingecko + "11939/large/shiba.png"},
	{"FLOKI", coingecko + "16746/large/PNG_image.png"},
	{"BONK", coingecko + "24383/large/bonk.png"},
	{"WIF", coingecko + "33566/large/dogwifhat.jpg"},
	{"NEIRO", coingecko + "39488/large/NEIRO200x200.jpg"},
	{"PEPE", coingecko + "29850/large/pepe-token.jpeg"},
	{"BRETT", coingecko + "35529/large/1000050750.png"},
	{"POPCAT", coingecko + "33760/large/popcat.jpg"},
	{"MEW", coingecko + "39765/large/mew.jpg"},
	{"MOG", coingecko + "31059/large/MOG_LOGO_200x200.png"},
	{"TURBO", coingecko + "30117/large/turbo.png"},
	{"DEGEN", coingecko + "35581/large/degen.png"},
	{"TOSHI", coingecko + "36407/large/toshi.png"},
	{"GIGA", coingecko + "34959/large/GIGA.jpg"},
	{"MEME", coingecko + "32528/large/memecoin_%282%29.png"},
	{"APU", coingecko + "28452/large/apuapustaja.png"},
	{"PORK", coingecko + "33482/large/pork.png"},
	{"COQ", coingecko + "35336/large/coq-logo.png"},
	{"MYRO", coingecko + "34258/large/MYRO200x200.png"},
	{"MOTHER", coingecko + "37507/large/MOTHER.png"},
	{"SNEK", coingecko + "33093/large/snek.png"},
	{"WEN", coingecko + "36077/large/Wen.png"},
	{"SMOG", coingecko + "35209/large/Smog_token_logo.png"},
}

// CatalogueURLs returns the source URLs of the built-in catalogue.
func CatalogueURLs() []string {
	urls := make([]string, len(Catalogue))
	for i, l := range Catalogue {
		urls[i] = l.URL
	}
	return urls
}
