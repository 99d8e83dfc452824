/*
Package ports defines the driven ports (interfaces) of rewind.

These interfaces decouple the core from its hosts, so a machine can be built
from a file, from memory, or from any other graph source.

# Key Interfaces

  - GraphLoader: Responsible for loading a transition graph (e.g., from a YAML file or memory).
*/
package ports
