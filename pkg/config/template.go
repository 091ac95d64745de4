package config

// DefaultTemplate is the starter config written by `prelint init`.
const DefaultTemplate = `# prelint configuration
# Directive marker phrase recognized in file text, e.g.
#   # prelint: disable[copyright]
marker: prelint

checks:
  copyright:
    enabled: true
    # options:
    #   holder: "ACME Corporation"
  codeowners:
    enabled: false
    options:
      project_prefix: ""
      # required:
      #   - file: CMakeLists.txt
      #     owners: ["@{prefix}-cmake-codeowners"]
  alpha-spec:
    enabled: false
    options:
      mode: development
      packages: []
      cuda_suffixed_packages: []
  project-license:
    enabled: false
    options:
      preferred: Apache-2.0
      acceptable: [Apache-2.0, BSD-3-Clause]
  conda-yes:
    enabled: true
  hardcoded-version:
    enabled: false
    options:
      version_file: VERSION

ignore:
  - "vendor/**"

backups:
  enabled: true
  mode: sidecar
`
