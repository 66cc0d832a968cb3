package cardtext

import "fmt"

// CompileContext is the mutable per-ability compile state described in §3
// and §4.7. It is scoped to a single top-level statement/trigger
// compilation and reset between top-level items; nothing outside a
// compile depends on it once lowering finishes.
type CompileContext struct {
	nextEffectID int
	nextTagID    int

	lastEffectID    int
	hasLastEffectID bool

	lastObjectTag string
	hasObjectTag  bool

	lastPlayerFilter PlayerRef
	hasPlayerFilter  bool

	iteratedPlayer       bool
	autoTagObjectTargets bool
}

// newCompileContext returns a fresh, zeroed CompileContext for one
// top-level statement or trigger body.
func newCompileContext() *CompileContext {
	return &CompileContext{}
}

// allocEffectID returns the next monotonic EffectId.
func (c *CompileContext) allocEffectID() int {
	id := c.nextEffectID
	c.nextEffectID++
	return id
}

// freshTag mints a unique tag name, e.g. "destroyed_0", "pumped_1".
func (c *CompileContext) freshTag(prefix string) string {
	tag := fmt.Sprintf("%s_%d", prefix, c.nextTagID)
	c.nextTagID++
	return tag
}

// bindObjectTag records tag as the most recently bound object, for "it"/
// "that creature"/"its controller" resolution.
func (c *CompileContext) bindObjectTag(tag string) {
	c.lastObjectTag = tag
	c.hasObjectTag = true
}

// bindPlayerFilter records a player reference as the most recently bound
// player, for "that player" resolution.
func (c *CompileContext) bindPlayerFilter(p PlayerRef) {
	c.lastPlayerFilter = p
	c.hasPlayerFilter = true
}

// setLastEffectID records the id of the effect just compiled, consumed by
// a following IfResult or PumpByLastEffect.
func (c *CompileContext) setLastEffectID(id int) {
	c.lastEffectID = id
	c.hasLastEffectID = true
}

// resolveIt resolves "it"/"them" to the last bound object tag, or returns
// a parse error if nothing has been bound yet (§4.7 pronoun resolution).
func (c *CompileContext) resolveIt() (string, error) {
	if !c.hasObjectTag {
		return "", newParseError("unable to resolve 'it' without prior reference", "it")
	}
	return c.lastObjectTag, nil
}

// resolveThatPlayer resolves "that player" to the last bound player
// filter, or to the iterated player when inside a ForEach*Player body.
func (c *CompileContext) resolveThatPlayer() (PlayerRef, error) {
	if c.iteratedPlayer {
		return PlayerRef{Kind: PlayerImplicit}, nil
	}
	if !c.hasPlayerFilter {
		return PlayerRef{}, newParseError("unable to resolve 'that player' without prior reference", "that player")
	}
	return c.lastPlayerFilter, nil
}

// resolveItsController resolves "its controller" to ControllerOf(tag);
// requires a bound object tag.
func (c *CompileContext) resolveItsController() (PlayerRef, error) {
	tag, err := c.resolveIt()
	if err != nil {
		return PlayerRef{}, newParseError("unable to resolve 'its controller' without prior reference", "its controller")
	}
	return PlayerRef{Kind: PlayerControllerOfTag, Tag: tag}, nil
}

// withIteration runs fn with iteratedPlayer=true and a saved/restored
// pronoun-binding scope, so bindings from the outer scope don't leak into
// the inner iteration and the inner iteration's bindings don't leak back
// out (§9's "coroutine-like flow" guidance, used by ForEach*/Vote bodies).
func (c *CompileContext) withIteration(fn func()) {
	savedIter := c.iteratedPlayer
	savedTag, savedHasTag := c.lastObjectTag, c.hasObjectTag
	savedPlayer, savedHasPlayer := c.lastPlayerFilter, c.hasPlayerFilter
	savedEffect, savedHasEffect := c.lastEffectID, c.hasLastEffectID

	c.iteratedPlayer = true
	c.lastObjectTag, c.hasObjectTag = "", false
	c.lastPlayerFilter, c.hasPlayerFilter = PlayerRef{}, false
	c.lastEffectID, c.hasLastEffectID = 0, false

	fn()

	c.iteratedPlayer = savedIter
	c.lastObjectTag, c.hasObjectTag = savedTag, savedHasTag
	c.lastPlayerFilter, c.hasPlayerFilter = savedPlayer, savedHasPlayer
	c.lastEffectID, c.hasLastEffectID = savedEffect, savedHasEffect
}
