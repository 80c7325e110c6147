package version

// Version is the service version reported by the health endpoint
const Version = "1.0.0"
