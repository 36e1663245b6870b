package urls

// Repository is the project home, shown in the help dialog and
// the version banner.
const Repository = "https://github.com/muurk/uvcctl"

// Troubleshooting covers busy cameras, missing controls and permission
// problems on the device node.
const Troubleshooting = "https://github.com/muurk/uvcctl#troubleshooting"

// V4LUtils is the upstream source of v4l2-ctl
const V4LUtils = "https://git.linuxtv.org/v4l-utils.git"

// V4L2Controls documents the standard camera controls
// (exposure, focus, white balance, power line frequency).
const V4L2Controls = "https://www.kernel.org/doc/html/latest/userspace-api/media/v4l/ext-ctrls-camera.html"
