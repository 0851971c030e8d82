package core

// Header carries the height the block producer declared for the block.
type Header[H Unsigned] struct {
	Height H
}

// Extrinsic is one caller-attributed call included in a block. The caller is
// assumed to be authenticated before the extrinsic reaches the runtime.
type Extrinsic[A any, Call any] struct {
	Caller A
	Call   Call
}

// Block is an ordered list of extrinsics under a header.
type Block[H Unsigned, A any, Call any] struct {
	Header     Header[H]
	Extrinsics []Extrinsic[A, Call]
}

// Dispatcher routes a call to the code that executes it with caller bound as the
// acting account. Every pallet implements it over its own call set and the runtime
// implements it over the union of them.
type Dispatcher[A any, Call any] interface {
	Dispatch(caller A, call Call) error
}
