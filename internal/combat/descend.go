package combat

import (
	"github.com/towerclimb/server/internal/entity"
	"github.com/towerclimb/server/internal/floorgen"
)

// Descend regenerates the next floor (hinted by the one being left),
// teleports the player to its start, and applies floor_heal. The
// session layer is responsible for the autosave this triggers since
// combat never touches persistence.
func (e *Engine) Descend(gen *floorgen.Generator, p *entity.Player, prevFloor *entity.Floor, merchantStreak int) (*entity.Floor, int, Result) {
	var res Result

	newLevel := prevFloor.Level + 1
	newFloor, newStreak := gen.Generate(newLevel, prevFloor, merchantStreak)
	p.Position = newFloor.PlayerStart

	if rate := entity.ArmorAffixSum(p, entity.FloorHeal); rate > 0 {
		maxHP := entity.EffectiveMaxHP(p)
		amount := int(float64(maxHP) * rate)
		if amount > 0 {
			p.HP += amount
			if p.HP > maxHP {
				p.HP = maxHP
			}
			res.log("The new floor's air restores %d HP.", amount)
		}
	}

	res.log("You descend to floor %d.", newLevel)

	if newFloor.Level >= 100 {
		res.log("A monstrous presence fills the air.")
	}

	return newFloor, newStreak, res
}
