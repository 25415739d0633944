package ecs

import (
	"github.com/phanxgames/touchkit"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GestureEventType is the Donburi event type for touchkit gesture events.
var GestureEventType = events.NewEventType[touchkit.GestureEvent]()

type donburiObserver struct {
	world donburi.World
}

// NewDonburiObserver creates an Observer backed by a Donburi world. Gesture
// events are published to GestureEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiObserver(world donburi.World) touchkit.Observer {
	return &donburiObserver{world: world}
}

func (o *donburiObserver) ObserveGesture(ev touchkit.GestureEvent) {
	GestureEventType.Publish(o.world, ev)
}

// ElementPose is the component NewDonburiPresenter keeps in sync with each
// presented element.
type ElementPose struct {
	ID              touchkit.ElementID
	Pose            touchkit.Pose
	AffordanceScale float64
}

// ElementPoseComponent is the Donburi component type for ElementPose.
var ElementPoseComponent = donburi.NewComponentType[ElementPose]()

// DonburiPresenter mirrors presented poses into Donburi entities, one entity
// per element id.
type DonburiPresenter struct {
	world    donburi.World
	entities map[touchkit.ElementID]donburi.Entity
}

// NewDonburiPresenter creates a Presenter that writes into world.
func NewDonburiPresenter(world donburi.World) *DonburiPresenter {
	return &DonburiPresenter{world: world, entities: make(map[touchkit.ElementID]donburi.Entity)}
}

// PresentPose creates or updates the element's entity.
func (p *DonburiPresenter) PresentPose(id touchkit.ElementID, pose touchkit.Pose, affordanceScale float64) {
	ent, ok := p.entities[id]
	if !ok || !p.world.Valid(ent) {
		ent = p.world.Create(ElementPoseComponent)
		p.entities[id] = ent
	}
	ElementPoseComponent.SetValue(p.world.Entry(ent), ElementPose{
		ID:              id,
		Pose:            pose,
		AffordanceScale: affordanceScale,
	})
}

// Entity returns the entity mirroring id.
func (p *DonburiPresenter) Entity(id touchkit.ElementID) (donburi.Entity, bool) {
	ent, ok := p.entities[id]
	if !ok || !p.world.Valid(ent) {
		return donburi.Null, false
	}
	return ent, true
}

// Forget removes the entity mirroring id, for closed elements.
func (p *DonburiPresenter) Forget(id touchkit.ElementID) {
	if ent, ok := p.entities[id]; ok {
		if p.world.Valid(ent) {
			p.world.Remove(ent)
		}
		delete(p.entities, id)
	}
}
