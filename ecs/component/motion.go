package component

import "github.com/milk9111/tilemotion/motion"

// MotionComponent holds an entity's movement state machine.
var MotionComponent = NewComponent[motion.State]()
