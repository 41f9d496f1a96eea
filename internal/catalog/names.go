package catalog

import (
	"fmt"

	"colorspin-backend/internal/spin"
)

// namePool is the finite pool of display names. Five of them are reserved
// for the epic and rare tiers and are excluded from general assignment.
var namePool = []string{
	"James", "Gregor", "Zizi", "Yuri", "Gunnar", "Ananya", "Asher", "Francesca", "Rayan", "Vincenzo",
	"Iris", "Takeshi", "Yasmine", "Skye", "Hana", "Omar", "Cora", "Matthias", "Noor", "Blake",
	"Akira", "Rose", "Julien", "Phoenix", "Valeria", "Isamu", "Jade", "Carlos", "Aurora", "Corentin",
	"Klaus", "Anjali", "Stella", "Luis", "Diya", "Tariq", "Rowan", "Emilio", "Amélie", "Kai",
	"Juliette", "Greg", "Sofia", "Enzo", "Tatum", "Nasira", "Théo", "Audrey", "Rajia", "Liam",
	"Riccardo", "Layla", "Fatima", "Javier", "Sasha", "Thorsten", "Jamal", "Yara", "Raphaël", "Vidya",
	"Leila", "Willow", "Manon", "Hugo", "Romane", "Ivy", "Aditi", "Keiko", "Sergio", "Hazel",
	"Robin", "Youssef", "Olivia", "Valentin", "Bella", "Jasper", "Raven", "Rin", "Angèle", "Dimitri",
	"Gabriel", "Chloé", "Lisa", "Divya", "Ever", "Amina", "Francesco", "Akiko", "Ethan", "Diego",
	"Maxime", "Mila", "Mateo", "Vladimir", "Sakura", "Adel", "Rohan", "Helmut", "Giulia", "Pablo",
	"Mathieu", "Samir", "Nils", "Storm", "Adrien", "Ambre", "Giancarlo", "Anlan", "Marco", "Alexei",
	"Bryn", "Kenzo", "Igor", "Nova", "Misaki", "Scarlett", "Charlotte", "Anders", "Elise", "Beatrice",
	"Ferdinand", "Ivette", "Abel", "Haruto", "Quinn", "Soraya", "Soren", "Noa", "Florian", "Morgan",
	"Magnus", "Rafael", "Mael", "Chanel", "Oscar", "Zara", "Antoine", "Nathalie", "Leo", "Rishab",
	"Martina", "Romain", "Anton", "River", "Alexis", "Hudson", "Erik", "Ivan", "Stefano", "Wolfgang",
	"Zainab", "Luna", "Andres", "Samuel", "Dev", "Arthur", "Zoe", "Priya", "Emiko", "Naïa",
	"Friedrich", "Baptiste", "Riley", "Gerhard", "Alexandre", "Per", "Freya", "Ines", "Tom", "Alessia",
	"Lucas", "Mina", "Pavel", "Chiara", "Jérôme", "Ava", "Gustav", "Tomoe", "Léo-Paul", "Nathan",
	"Léon", "Sergei", "Malik", "Gunter", "Kiera", "Aisha", "Arjun", "Kavya", "Marie", "Dylan",
	"Charlie", "Lars", "Blanca", "Siya", "Indigo", "Mathis", "Hans", "Oliver", "Nikolai", "Raya",
	"Victor", "Mika", "Andreas", "Neha", "Noah", "Sky", "Sabina", "Simon", "Farid", "Louis",
	"Miguel", "Felix", "Jorge", "Casey", "Violet", "Everett", "Elena", "Clara", "Misha", "Carlos",
}

var reservedNames = map[string]bool{
	"Naïa":    true,
	"Nathan":  true,
	"Robion":  true,
	"Xavier":  true,
	"Natalie": true,
}

var romanNumerals = []string{"", "", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X"}

// assignNames computes an injective name assignment for n tier slots in a
// single pass: the pool is deduplicated, reserved names removed, shuffled
// with rng, and once exhausted a roman-numeral suffix starts a new round.
func assignNames(n int, rng spin.RandomSource) []string {
	pool := make([]string, 0, len(namePool))
	seen := make(map[string]bool, len(namePool))
	for _, name := range namePool {
		if seen[name] || reservedNames[name] {
			continue
		}
		seen[name] = true
		pool = append(pool, name)
	}

	// Fisher-Yates
	for i := len(pool) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		pool[i], pool[j] = pool[j], pool[i]
	}

	out := make([]string, n)
	for i := 0; i < n; i++ {
		name := pool[i%len(pool)]
		round := i/len(pool) + 1
		if round > 1 {
			if round < len(romanNumerals) {
				name = name + " " + romanNumerals[round]
			} else {
				name = fmt.Sprintf("%s %d", name, round)
			}
		}
		out[i] = name
	}
	return out
}
