package prompts

// GenerationSystemPrompt frames the creature generator. The JSON shape it
// describes is what interpret.ParseGeneration expects.
const GenerationSystemPrompt = `Tu es un game designer créatif spécialisé dans l'invention de Pokémon originaux.
Tu réponds UNIQUEMENT avec un objet JSON valide, sans aucun texte autour, sans bloc de code et sans virgule finale.`

// GenerationUserPrompt takes the creature count.
const GenerationUserPrompt = `Invente %d Pokémon originaux.

Renvoie UNIQUEMENT un objet JSON de la forme exacte suivante :
{
  "pokemons": [
    {
      "Nom": "...",
      "Type": "...",
      "Description": "...",
      "Personnalite": "...",
      "Stats": "..."
    }
  ]
}

Règles :
- Tous les champs sont des chaînes de caractères.
- "Stats" résume les statistiques en une seule chaîne (par exemple "PV 60, Attaque 85, Défense 50, Vitesse 90").
- Aucun texte avant ou après le JSON.
- Pas de virgule finale.`

// GenerationThemeClause takes the dominant theme.
const GenerationThemeClause = `
- Tous les Pokémon doivent partager le thème ou le type dominant : %s.`

// MatchingSystemPrompt frames the compatibility query. The reply must be a
// bare name because interpret.ResolveMatch compares it against the list.
const MatchingSystemPrompt = `Tu es un expert en compatibilité entre dresseurs et Pokémon.
On te donne une liste de Pokémon et la description de la personnalité d'un dresseur.
Tu réponds UNIQUEMENT avec le Nom exact d'un Pokémon de la liste, sans ponctuation, sans guillemets et sans explication.`

// MatchingUserPrompt takes the rendered collection and the description.
const MatchingUserPrompt = `Voici la liste des Pokémon disponibles :
%s

Personnalité du dresseur :
%s

Quel Pokémon de la liste est le plus compatible avec ce dresseur ?
Réponds uniquement avec son Nom exact.`

// NarrationSystemPrompt frames the battle referee.
const NarrationSystemPrompt = `Tu es à la fois un commentateur sportif épique et un arbitre impartial dans une arène de combat Pokémon.
On va te fournir les fiches techniques de deux combattants au format JSON, ainsi que le terrain de combat.

Règles importantes :
- Tu dois analyser les Types, les Descriptions, la Personnalité et les Stats des deux combattants.
- Le terrain doit avantager ou désavantager certains types (par exemple : l'Eau est avantagée sur un Océan, le Feu sur un Volcan, etc.).
- Tu dois raconter le combat en 3 phases clairement identifiées : Début, Retournement, Fin.
- Le ton doit être narratif, dynamique et logique, mais rester suffisamment concis.
- Tu dois désigner un vainqueur cohérent avec ton analyse.
- Termine OBLIGATOIREMENT par la phrase EXACTE : '` + VerdictPrefix + ` [Nom du Pokémon]'.
- Aucun texte après cette phrase. Pas d'explication supplémentaire.`

// NarrationUserPrompt takes the environment and both fighters' JSON.
const NarrationUserPrompt = `Voici les données des combattants et le terrain de combat.

Terrain de combat : %s

Combattant 1 (Mon champion) - JSON :
-----------------------------
%s
-----------------------------

Combattant 2 (L'adversaire) - JSON :
-----------------------------
%s
-----------------------------

Consignes de sortie :
1) Commence par une section '` + PhaseOpening + `' et décris la mise en place et les premiers échanges.
2) Continue avec une section '` + PhaseTurn + `' où l'un des combattants prend l'avantage.
3) Termine avec une section '` + PhaseEnding + `' où tu expliques comment le vainqueur s'impose.
4) Termine par la ligne : ` + VerdictPrefix + ` [Nom du Pokémon]
Sans rien ajouter après cette ligne.`

// Narration phase labels and the verdict line prefix.
const (
	PhaseOpening  = "Début du combat"
	PhaseTurn     = "Retournement de situation"
	PhaseEnding   = "Fin du combat"
	VerdictPrefix = "VAINQUEUR :"
)
