package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "descriptor"
	FilePath    string `json:"filePath"`    // Path to the descriptor (descriptor type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

// ListDescriptorScenes scans dir for *.json scene descriptors. A missing
// directory yields an empty list.
func ListDescriptorScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		info, err := ReadSceneInfo(filePath)
		if err != nil {
			// Skip broken descriptors but keep listing the rest
			fmt.Printf("Warning: failed to read scene descriptor %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// ReadSceneInfo extracts the listing metadata of a descriptor file
func ReadSceneInfo(filePath string) (SceneInfo, error) {
	id := trimExt(filepath.Base(filePath))
	info := SceneInfo{
		ID:          "descriptor:" + id,
		Name:        titleCase(id),
		DisplayName: titleCase(id),
		Group:       "Descriptor Scenes",
		Type:        "descriptor",
		FilePath:    filePath,
	}

	desc, err := LoadDescriptor(filePath)
	if err != nil {
		return info, err
	}
	info.Name = desc.Name
	info.DisplayName = titleCase(desc.Name)
	info.Description = desc.Description
	if desc.Group != "" {
		info.Group = desc.Group
	}
	return info, nil
}

// ListAllScenes returns built-in scenes and the descriptors found in dir, grouped by category
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	var all []SceneInfo
	for _, name := range BuiltinNames {
		desc, err := NamedDescriptor(name, Summer)
		if err != nil {
			return response, err
		}
		all = append(all, SceneInfo{
			ID:          name,
			Name:        desc.Name,
			DisplayName: titleCase(desc.Name),
			Description: desc.Description,
			Group:       builtinGroup,
			Type:        "builtin",
		})
	}

	found, err := ListDescriptorScenes(dir)
	if err != nil {
		return response, fmt.Errorf("failed to list descriptor scenes: %w", err)
	}
	all = append(all, found...)

	groupMap := make(map[string][]SceneInfo)
	for _, info := range all {
		groupMap[info.Group] = append(groupMap[info.Group], info)
	}

	// Built-in first, then alphabetical
	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtinGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	if builtIn, exists := groupMap[builtinGroup]; exists {
		response.Groups = append(response.Groups, SceneGroup{Name: builtinGroup, Scenes: builtIn})
	}
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{Name: groupName, Scenes: groupMap[groupName]})
	}

	return response, nil
}

func trimExt(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

// titleCase converts a filename-style string to title case
// e.g., "winter-garden" -> "Winter Garden"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
