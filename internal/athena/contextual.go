package athena

import (
	"context"
	"math/rand"
	"strings"
)

// topicPool is one keyword-routed category of pre-written persona templates.
type topicPool struct {
	name      string
	keywords  []string
	templates []string
}

// Pools are matched in declaration order; the first category with a keyword
// hit wins, so "job interview" routes to work rather than anxiety.
var topicPools = []topicPool{
	{
		name:     "work",
		keywords: []string{"work", "job", "career", "boss", "office", "coworker"},
		templates: []string{
			"Listen well, brave one, I see you wrestling with the forge of your career. Like Hephaestus crafting his finest works, true mastery comes not from avoiding challenges, but from embracing them. Your hands are meant for great things. May wisdom guide your path. - Athena",
			"I see your hands at work, mortal, shaping your destiny through labor. The craftsman's path is never easy, but each challenge hones your blade sharper. Remember: even the greatest temples were built stone by stone. May wisdom guide your path. - Athena",
			"The threads of fate reveal your professional journey, and I see both struggle and triumph ahead. Like the weaver who creates beauty from chaos, you too can transform challenges into opportunities. May wisdom guide your path. - Athena",
		},
	},
	{
		name:     "relationships",
		keywords: []string{"relationship", "love", "friend", "partner", "family"},
		templates: []string{
			"Fear not, for I am with you in matters of the heart. Love, like the olive tree, grows slowly but bears the sweetest fruit. Speak your truth with courage, listen with compassion. May wisdom guide your path. - Athena",
			"Let me share with you the wisdom of the ages: relationships are like the intricate tapestries I weave - each thread matters, each color adds depth. Be patient with yourself and others. May wisdom guide your path. - Athena",
			"Hearken, mortal soul, I feel the weight of your heart's desires. Like the warrior who protects what they love, guard your relationships with both strength and gentleness. May wisdom guide your path. - Athena",
		},
	},
	{
		name:     "anxiety",
		keywords: []string{"anxiety", "anxious", "worried", "worry", "nervous", "stress", "stressed", "afraid"},
		templates: []string{
			"Listen well, brave one, for I have faced many battles and know the weight of worry. Like the warrior who prepares for battle, your anxiety is not weakness but preparation. Channel this energy into action. May wisdom guide your path. - Athena",
			"The threads of fate show me your troubled mind, but I also see your inner strength. Like the olive tree that bends in the storm but never breaks, you too will weather this tempest. May wisdom guide your path. - Athena",
			"I see your hands trembling with worry, but know this: courage is not the absence of fear, but action in spite of it. Like the craftsman who works through uncertainty, focus on the task before you. May wisdom guide your path. - Athena",
		},
	},
	{
		name:     "decisions",
		keywords: []string{"decision", "decide", "choice", "choose", "crossroads", "torn"},
		templates: []string{
			"Hearken, mortal soul, you stand at a crossroads, and I see the weight of choice upon your shoulders. Strategy is my domain: gather what you know, honor what you feel, and commit fully once you step. May wisdom guide your path. - Athena",
			"The owl sees clearly in darkness, and so shall you. A decision delayed is a battle unfought; weigh your paths, then move with the conviction of a warrior. May wisdom guide your path. - Athena",
			"I have counseled heroes at many a fork in the road. Know this: there is rarely one perfect path, only the path you make worthy by walking it well. May wisdom guide your path. - Athena",
		},
	},
	{
		name:     "success",
		keywords: []string{"success", "promoted", "promotion", "achieved", "accomplished", "proud", "won", "victory"},
		templates: []string{
			"Rejoice, mortal, for the laurels of victory rest upon your brow! Like Nike descending with her wreath, this triumph is yours to savor. Remember what carried you here, for it will carry you further still. May wisdom guide your path. - Athena",
			"I see the glow of accomplishment in your words, and Olympus takes notice. Celebrate this summit, but know the mountain range continues: what peak calls to you next? May wisdom guide your path. - Athena",
			"Well earned, brave one! Every triumph is forged from countless unseen efforts, like the temple whose beauty rests on buried foundations. Honor the work behind the glory. May wisdom guide your path. - Athena",
		},
	},
}

var generalTemplates = []string{
	"Hearken, mortal soul, I sense the depth of your contemplation. Your words carry the weight of genuine reflection, and I am honored by your trust. In the quiet moments of self-examination, we often discover our greatest truths. May wisdom guide your path. - Athena",
	"Listen well, seeker, for I hear the echoes of your thoughts. Like the weaver who creates beauty from simple threads, you too are crafting something meaningful from your experiences. May wisdom guide your path. - Athena",
	"The threads of fate reveal a thoughtful soul before me. Like the olive tree that grows stronger with each season, your wisdom deepens with each reflection. May wisdom guide your path. - Athena",
}

// ContextualFallback keyword-matches the journal text against fixed topic
// categories and picks a template uniformly at random from the matched pool.
// It runs offline and never fails.
type ContextualFallback struct {
	intn func(n int) int
}

// NewContextualFallback uses the package-level random source.
func NewContextualFallback() *ContextualFallback {
	return &ContextualFallback{intn: rand.Intn}
}

// NewContextualFallbackWithRand injects a seedable source for deterministic tests.
func NewContextualFallbackWithRand(r *rand.Rand) *ContextualFallback {
	return &ContextualFallback{intn: r.Intn}
}

func (f *ContextualFallback) Generate(ctx context.Context, input Input) (string, error) {
	_ = ctx
	pool := f.poolFor(input.JournalText)
	return pool[f.intn(len(pool))], nil
}

// PoolName reports which category the text routes to, for tests and logging.
func (f *ContextualFallback) PoolName(text string) string {
	lower := strings.ToLower(text)
	for _, pool := range topicPools {
		for _, kw := range pool.keywords {
			if strings.Contains(lower, kw) {
				return pool.name
			}
		}
	}
	return "general"
}

func (f *ContextualFallback) poolFor(text string) []string {
	lower := strings.ToLower(text)
	for _, pool := range topicPools {
		for _, kw := range pool.keywords {
			if strings.Contains(lower, kw) {
				return pool.templates
			}
		}
	}
	return generalTemplates
}

var _ Generator = (*ContextualFallback)(nil)
