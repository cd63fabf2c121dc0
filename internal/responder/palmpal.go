package responder

import "github.com/sawitpro/palmstore/internal/models"

// Messages of the PalmPal farming assistant
const (
	PalmPalGreeting = "👋 Hello farmer! I’m PalmPal. Ask me anything to help your plantation thrive 🌱"
	PalmPalApology  = "⚠️ Oops! Something went wrong."
)

func bilingual(english, indonesian string) Replies {
	return Replies{
		models.LanguageEnglish:    english,
		models.LanguageIndonesian: indonesian,
	}
}

// PalmPalRules is the farming assistant's rule table in priority order
var PalmPalRules = []Rule{
	{
		Name:     "greeting",
		Keywords: []string{"hello", "hey", "halo", "selamat"},
		Replies: bilingual(
			"Hello farmer! Ask me about fertilizing, harvesting, pest control or the dry season.",
			"Halo petani! Tanyakan tentang pemupukan, panen, pengendalian hama, atau musim kemarau.",
		),
	},
	{
		Name:     "dry-season",
		Keywords: []string{"dry season", "drought", "kemarau", "irrigat", "siram"},
		Replies: bilingual(
			"During the dry season, split fertilizer into smaller doses and apply right after rain. Mulch the palm circle with empty fruit bunches to keep moisture in the soil.",
			"Saat musim kemarau, bagi pupuk menjadi dosis kecil dan aplikasikan setelah hujan. Tutup piringan sawit dengan janjang kosong agar tanah tetap lembap.",
		),
	},
	{
		Name:     "fertilizer",
		Keywords: []string{"fertiliz", "fertilis", "pupuk", "npk", "soil", "tanah"},
		Replies: bilingual(
			"A common mix is 1 kg Abu Janjang with 0.5 kg SawitPRO organic fertilizer per palm. Spread it evenly across the weeded palm circle, not against the trunk.",
			"Campuran yang umum adalah 1 kg Abu Janjang dan 0,5 kg pupuk organik SawitPRO per tanaman. Tabur merata di piringan yang bersih, jangan menempel pada batang.",
		),
	},
	{
		Name:     "harvesting",
		Keywords: []string{"harvest", "panen", "tool", "alat", "cutter", "dodos", "egrek"},
		Replies: bilingual(
			"For young palms use a chisel (dodos); for tall palms use a sickle on a pole (egrek). A sharp cutter such as Palm Cutter Pro reduces damage to fronds and fruit bunches.",
			"Untuk sawit muda gunakan dodos; untuk sawit tinggi gunakan egrek. Pisau yang tajam seperti Palm Cutter Pro mengurangi kerusakan pelepah dan tandan buah.",
		),
	},
	{
		Name:     "pest-control",
		Keywords: []string{"pest", "hama", "insect", "serangga", "eco-friendly", "ramah lingkungan", "disease", "penyakit"},
		Replies: bilingual(
			"For eco-friendly pest control, install barn owl nest boxes against rats and plant beneficial plants such as Turnera to host natural predators of leaf-eating caterpillars.",
			"Untuk pengendalian hama ramah lingkungan, pasang rubuha burung hantu untuk tikus dan tanam tanaman bermanfaat seperti Turnera sebagai inang predator alami ulat pemakan daun.",
		),
	},
	{
		Name:     "price",
		Keywords: []string{"price", "harga", "cost", "biaya"},
		Replies: bilingual(
			"Fertilizer ProMix is IDR 150,000, Palm Cutter Pro is IDR 80,000 and Organic Soil Booster is IDR 120,000.",
			"Fertilizer ProMix Rp150.000, Palm Cutter Pro Rp80.000, dan Organic Soil Booster Rp120.000.",
		),
	},
}

// PalmPalFallback is returned when no farming topic matches
var PalmPalFallback = bilingual(
	"I can help with fertilizing, harvesting tools, pest control and dry season care. Could you tell me more about your plantation?",
	"Saya bisa membantu soal pemupukan, alat panen, pengendalian hama, dan perawatan musim kemarau. Ceritakan lebih lanjut tentang kebun Anda?",
)

// NewPalmPal returns the PalmPal farming assistant
func NewPalmPal() *KeywordResponder {
	return NewKeywordResponder(PalmPalRules, PalmPalFallback)
}
