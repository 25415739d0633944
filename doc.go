// Package touchkit arranges layered images under multi-touch gestures for
// [Ebitengine].
//
// A [Kit] holds one background and any number of overlay children. Each
// element has a pose (translation, uniform scale, rotation) that gestures
// manipulate, a bounding policy that keeps it near the viewport, and a set of
// enabled gestures. The arrangement can be flattened into a single image at
// the background's source resolution.
//
// # Quick start
//
// The simplest way to get started is [Run], which opens a window sized to the
// kit's viewport:
//
//	kit := touchkit.NewKit(touchkit.Options{
//		Viewport: touchkit.Size{Width: 400, Height: 600},
//	})
//	kit.Background(touchkit.BackgroundOptions{
//		Image: touchkit.FromFile("beach.jpg"),
//		Type:  touchkit.BackgroundCrop,
//	})
//	kit.Add(touchkit.ChildOptions{
//		Image: touchkit.FromFile("hat.png"),
//		Width: "40%",
//		Use:   touchkit.Capabilities{Drag: true, Pinch: true, Rotate: true},
//		Pos:   touchkit.Placement{X: "center", Y: "top:20"},
//		Close: true,
//	})
//	touchkit.Run("touchkit", touchkit.NewGame(kit))
//
// For full control, implement [ebiten.Game] yourself: call [Recognizer.Poll]
// and [Kit.Update] from Update, and [Kit.Draw] from Draw.
//
// # Gestures
//
// The kit's [Recognizer] turns mouse and touch input into named events:
// drag, pinch, rotate, and the single-finger singlePinch and singleRotate
// that act on the affordance drawn at the operator's bottom-right corner.
// Events can also be fed directly with [Kit.Dispatch], which is how a
// custom gesture source plugs in (see [Options.Gestures]).
//
// Only the operator, the single focused element, moves. A start event
// snapshots its pose; each move accumulates onto that snapshot, then
// [Clamp] maps the result into range before it is persisted. The snapshot
// itself is never clamped, so an element dragged past its limit stays pinned
// until the finger comes back.
//
// Events are forwarded to [Options.Events], handlers registered with
// [Kit.OnGesture], and an optional [Observer]. The ecs subpackage publishes
// them into a [Donburi] world.
//
// # Loading
//
// Images load asynchronously through a [Loader]. Completions are applied on
// the kit's goroutine during [Kit.Update], or all at once with [Kit.Settle]
// in headless code. [Kit.Reset] discards pending loads.
//
// # Export
//
// [Kit.Compose] describes the arrangement as a [CompositionRequest] scaled
// to the background's source pixels; [Kit.ExportImage] renders it, by default
// with [ImageRenderer] into a PNG.
//
// # Layouts and scripts
//
// [LoadLayout] reads a TOML arrangement and [Layout.Apply] builds it on a
// kit. [LoadScript] reads a JSON gesture script that replays pointer input
// frame by frame, for demos and tests. The touchkit command wraps both.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package touchkit
