package component

import "github.com/milk9111/tilemotion/motion"

// InputComponent stores the input sampled for the current frame.
var InputComponent = NewComponent[motion.Input]()
