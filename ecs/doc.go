// Package ecs bridges touchkit into a [Donburi] world.
//
// [NewDonburiObserver] publishes every routed gesture event as a typed
// Donburi event. Subscribe to [GestureEventType] in your systems to receive
// them. [NewDonburiPresenter] mirrors presented element poses into entities
// carrying an [ElementPose] component.
//
// Usage:
//
//	kit := touchkit.NewKit(touchkit.Options{
//		Viewport:  touchkit.Size{Width: 400, Height: 600},
//		Presenter: ecs.NewDonburiPresenter(world),
//	})
//	kit.SetObserver(ecs.NewDonburiObserver(world))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
